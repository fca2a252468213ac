// Package store exports episode trajectories to portable formats.
package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cartpole/internal/sim"
)

type ExportData struct {
	Model      string             `json:"model"`
	Policy     string             `json:"policy"`
	TimeDelta  float64            `json:"time_delta"`
	Steps      int                `json:"steps"`
	Terminated bool               `json:"terminated"`
	Return     float64            `json:"return"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Dirs       []float64          `json:"dirs"`
	Rewards    []float64          `json:"rewards"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExport(model, policy string, timeDelta float64, result *sim.Result) ExportData {
	data := ExportData{
		Model:      model,
		Policy:     policy,
		TimeDelta:  timeDelta,
		Steps:      result.Steps,
		Terminated: result.Terminated,
		Return:     result.Return,
		Times:      make([]float64, len(result.States)),
		States:     make([][]float64, len(result.States)),
		Dirs:       make([]float64, len(result.Actions)),
		Rewards:    result.Rewards,
		Metrics:    result.Metrics,
	}

	for i, s := range result.States {
		data.Times[i] = float64(i) * timeDelta
		data.States[i] = s.Vector()
	}
	for i, a := range result.Actions {
		data.Dirs[i] = a.Dir
	}

	return data
}

// ExportJSON writes one episode to path as indented JSON.
func ExportJSON(path, model, policy string, timeDelta float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, model, policy, timeDelta, result)
}

// ExportJSONStdout writes one episode to standard output.
func ExportJSONStdout(model, policy string, timeDelta float64, result *sim.Result) error {
	return writeExport(os.Stdout, model, policy, timeDelta, result)
}

func writeExport(w io.Writer, model, policy string, timeDelta float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(model, policy, timeDelta, result))
}
