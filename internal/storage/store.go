package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
)

// ErrRunNotFound reports a run ID with no stored data.
var ErrRunNotFound = errors.New("run not found")

// Store persists episode trajectories as one directory per run holding
// metadata.json and states.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo names the setup that produced a trajectory.
type RunInfo struct {
	Model     string
	Policy    string
	Seed      int64
	TimeDelta float64
	MaxSteps  int
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Policy     string             `json:"policy"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	TimeDelta  float64            `json:"time_delta"`
	MaxSteps   int                `json:"max_steps"`
	Steps      int                `json:"steps"`
	Terminated bool               `json:"terminated"`
	Return     float64            `json:"return"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one episode and returns its run ID.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", info.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      info.Model,
		Policy:     info.Policy,
		Timestamp:  time.Now(),
		Seed:       info.Seed,
		TimeDelta:  info.TimeDelta,
		MaxSteps:   info.MaxSteps,
		Steps:      result.Steps,
		Terminated: result.Terminated,
		Return:     result.Return,
		Metrics:    result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", cartpole.AttrX, cartpole.AttrXVel,
		cartpole.AttrAngle, cartpole.AttrAngleVel, "dir", "reward"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, st := range result.States {
		row := []string{strconv.FormatFloat(float64(i)*info.TimeDelta, 'f', 6, 64)}
		for _, val := range st.Vector() {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}

		// The start state has no action or reward leading into it; pad
		// so every row has the same width.
		if i < len(result.Actions) {
			row = append(row,
				strconv.FormatFloat(result.Actions[i].Dir, 'f', 6, 64),
				strconv.FormatFloat(result.Rewards[i], 'f', 6, 64))
		} else {
			row = append(row, "0", "0")
		}

		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads a run's trajectory back as states and times. Rows that
// fail to parse are skipped.
func (s *Store) LoadStates(runID string) ([]cartpole.State, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []cartpole.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]cartpole.State, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 5 {
			continue
		}

		vals := make([]float64, 0, 5)
		ok := true
		for j := 0; j < 5; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			continue
		}

		times = append(times, vals[0])
		states = append(states, cartpole.NewState(vals[1], vals[2], vals[3], vals[4]))
	}

	return states, times, nil
}
