package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

func TestExportJSON(t *testing.T) {
	result := &sim.Result{
		States: []cartpole.State{
			cartpole.InitialState(),
			cartpole.NewState(0.1, 0.2, -0.01, -0.3),
		},
		Actions:    []cartpole.Action{cartpole.ActionLeft},
		Rewards:    []float64{-1},
		Steps:      1,
		Terminated: true,
		Return:     -1,
		Metrics:    map[string]float64{"survival": 1},
	}

	path := filepath.Join(t.TempDir(), "episode.json")
	if err := ExportJSON(path, "correct", "left", 0.02, result); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("exported file is not valid JSON: %v", err)
	}

	if got.Model != "correct" || got.Policy != "left" {
		t.Errorf("header mismatch: %+v", got)
	}
	if got.Steps != 1 || !got.Terminated || got.Return != -1 {
		t.Errorf("summary mismatch: %+v", got)
	}
	if len(got.States) != 2 || len(got.Times) != 2 {
		t.Fatalf("expected 2 trajectory rows, got %d/%d", len(got.States), len(got.Times))
	}
	if len(got.States[0]) != 4 {
		t.Errorf("states should hold the four physical components, got %d", len(got.States[0]))
	}
	if got.Times[1] != 0.02 {
		t.Errorf("times should advance by the time delta, got %v", got.Times[1])
	}
	if len(got.Dirs) != 1 || got.Dirs[0] != -1 {
		t.Errorf("dirs mismatch: %v", got.Dirs)
	}
	if len(got.Rewards) != 1 || got.Rewards[0] != -1 {
		t.Errorf("rewards mismatch: %v", got.Rewards)
	}
}
