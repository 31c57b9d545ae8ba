package environ

import (
	"os"
	"strings"
	"testing"
)

func TestProjector_AllowList(t *testing.T) {
	ambient := map[string]string{
		"HOME":       "/home/user",
		"PATH":       "/usr/bin",
		"SECRET_KEY": "hunter2",
	}

	p := NewProjectorFrom([]string{"HOME", "PATH", "UNSET_VAR"}, ambient)
	env := p.Snapshot()

	t.Run("allowed variables are projected", func(t *testing.T) {
		if v, ok := env.Get("HOME"); !ok || v != "/home/user" {
			t.Errorf("expected HOME=/home/user, got %q (present=%v)", v, ok)
		}
	})

	t.Run("variables off the allow-list are dropped", func(t *testing.T) {
		if _, ok := env.Get("SECRET_KEY"); ok {
			t.Error("SECRET_KEY should not be projected")
		}
	})

	t.Run("unset allowed variables stay absent", func(t *testing.T) {
		if _, ok := env.Get("UNSET_VAR"); ok {
			t.Error("UNSET_VAR should be absent, not empty")
		}
	})
}

func TestProjector_PathManipulation(t *testing.T) {
	sep := string(os.PathListSeparator)

	t.Run("append extends an existing value", func(t *testing.T) {
		p := NewProjectorFrom([]string{"PATH"}, map[string]string{"PATH": "/usr/bin"})
		p.AppendPath("PATH", "/opt/tools")
		if v, _ := p.Snapshot().Get("PATH"); v != "/usr/bin"+sep+"/opt/tools" {
			t.Errorf("unexpected PATH: %q", v)
		}
	})

	t.Run("prepend takes priority", func(t *testing.T) {
		p := NewProjectorFrom([]string{"PATH"}, map[string]string{"PATH": "/usr/bin"})
		p.PrependPath("PATH", "/opt/tools")
		v, _ := p.Snapshot().Get("PATH")
		if !strings.HasPrefix(v, "/opt/tools"+sep) {
			t.Errorf("expected /opt/tools first, got %q", v)
		}
	})

	t.Run("append to an unset variable sets it", func(t *testing.T) {
		p := NewProjectorFrom(nil, nil)
		p.AppendPath("LD_LIBRARY_PATH", "/opt/lib")
		if v, _ := p.Snapshot().Get("LD_LIBRARY_PATH"); v != "/opt/lib" {
			t.Errorf("unexpected value: %q", v)
		}
	})
}

func TestEnvironment_Immutability(t *testing.T) {
	p := NewProjectorFrom([]string{"HOME"}, map[string]string{"HOME": "/home/user"})
	snap := p.Snapshot()

	p.Set("HOME", "/mutated")
	if v, _ := snap.Get("HOME"); v != "/home/user" {
		t.Errorf("snapshot mutated through projector: %q", v)
	}

	derived := snap.With("EXTRA", "1")
	if _, ok := snap.Get("EXTRA"); ok {
		t.Error("With must not mutate the receiver")
	}
	if v, _ := derived.Get("EXTRA"); v != "1" {
		t.Errorf("derived environment missing EXTRA: %q", v)
	}
}

func TestEnvironment_SliceIsSorted(t *testing.T) {
	p := NewProjectorFrom(nil, nil)
	p.Set("ZED", "1")
	p.Set("ALPHA", "2")
	p.Set("MID", "3")

	pairs := p.Snapshot().Slice()
	expected := []string{"ALPHA=2", "MID=3", "ZED=1"}
	if len(pairs) != len(expected) {
		t.Fatalf("expected %d pairs, got %d", len(expected), len(pairs))
	}
	for i := range expected {
		if pairs[i] != expected[i] {
			t.Errorf("pair %d: expected %q, got %q", i, expected[i], pairs[i])
		}
	}
}
