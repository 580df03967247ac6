package presets

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tetris-ga/internal/agent"
	"github.com/vovakirdan/tetris-ga/internal/genetic"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{"pytris", "pytris-alt"} {
		if !Exists(name) {
			t.Errorf("preset %q not registered", name)
		}
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("List() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(Preset{Name: "pytris"})
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestResolve(t *testing.T) {
	p, err := Get("pytris")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	g, err := Resolve("pytris")
	if err != nil {
		t.Fatalf("Resolve(preset) failed: %v", err)
	}
	if g != p.Genotype {
		t.Errorf("Resolve(preset) = %v, want %v", g, p.Genotype)
	}

	path := filepath.Join(t.TempDir(), "cp.yaml")
	best := agent.Genotype{1, 2, 3, 4, 5, 6, 7, 8, 9}
	cp := genetic.NewCheckpoint(1, 3, []*agent.Agent{{Genotype: best, FitScore: 10}})
	if err := genetic.SaveCheckpoint(path, cp); err != nil {
		t.Fatalf("SaveCheckpoint() failed: %v", err)
	}
	g, err = Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(file) failed: %v", err)
	}
	if g != best {
		t.Errorf("Resolve(file) = %v, want %v", g, best)
	}

	if _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing reference")
	}
}

func TestDefaultPresetIsPlayedGenotype(t *testing.T) {
	p, err := Get("pytris")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if p.Genotype[0] != 0.5501233868775208 || p.Genotype[8] != 0.8136523639225275 {
		t.Errorf("pytris genotype = %v, expected the shipped top gene", p.Genotype)
	}

	alt, err := Get("pytris-alt")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if alt.Genotype[0] != -0.7255216469812669 {
		t.Errorf("pytris-alt genotype = %v, expected the earlier gene", alt.Genotype)
	}
}
