package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"jlit/internal/domain"
)

// Save writes run results and failure diagnostics to the configured JSON
// results file.
func (s *JSONStorage) Save(results []domain.Result, duration time.Duration, workers int) error {
	output := domain.RunOutput{
		Meta: domain.Summarize(s.cfg.SuiteName, results, duration, workers, time.Now().Format(time.RFC3339)),
	}
	for _, r := range results {
		if !r.Status.Failed() {
			continue
		}
		output.Failures = append(output.Failures, domain.Failure{
			TestName:   r.Test.Name,
			FilePath:   r.Test.Path,
			Status:     string(r.Status),
			Diagnostic: r.Diagnostic,
			Output:     r.Output,
		})
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Load reads the last run's results from the configured JSON results file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetResultsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}
