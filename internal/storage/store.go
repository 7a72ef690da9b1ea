// Package storage persists run records: one directory per run holding
// metadata and the pendulum trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ravi-l/povsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Dt          float64   `json:"dt"`
	Duration    float64   `json:"duration"`
	Steps       int       `json:"steps"`
	EnergyDrift float64   `json:"energy_drift"`
	OutputDir   string    `json:"output_dir"`
}

// Sample is one recorded trajectory row: time plus the tracked body's pose.
type Sample struct {
	Time float64
	Pos  [3]float64
	Rot  [4]float64
}

// SampleBody captures the current pose of b at time t.
func SampleBody(t float64, b *engine.Body) Sample {
	return Sample{
		Time: t,
		Pos:  [3]float64{b.Pos.X, b.Pos.Y, b.Pos.Z},
		Rot:  [4]float64{b.Rot.W, b.Rot.X, b.Rot.Y, b.Rot.Z},
	}
}

// Save writes a new run directory and returns its id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	runID := fmt.Sprintf("pend_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(samples)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time", "px", "py", "pz", "qw", "qx", "qy", "qz"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, sm := range samples {
		row := make([]string, 0, 8)
		row = append(row, strconv.FormatFloat(sm.Time, 'f', 6, 64))
		for _, v := range sm.Pos {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		for _, v := range sm.Rot {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads the stored trajectory of a run.
func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(records))
	for i, record := range records {
		if i == 0 || len(record) < 8 {
			continue
		}

		vals := make([]float64, 8)
		ok := true
		for j := 0; j < 8; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		samples = append(samples, Sample{
			Time: vals[0],
			Pos:  [3]float64{vals[1], vals[2], vals[3]},
			Rot:  [4]float64{vals[4], vals[5], vals[6], vals[7]},
		})
	}

	return samples, nil
}

// ExportData is the JSON shape of a full run dump.
type ExportData struct {
	ID          string       `json:"id"`
	Dt          float64      `json:"dt"`
	Duration    float64      `json:"duration"`
	Steps       int          `json:"steps"`
	EnergyDrift float64      `json:"energy_drift"`
	Times       []float64    `json:"times"`
	Positions   [][3]float64 `json:"positions"`
	Rotations   [][4]float64 `json:"rotations"`
}

// ExportJSON writes a run dump to the given file path.
func ExportJSON(path string, meta *RunMetadata, samples []Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(json.NewEncoder(file), meta, samples)
}

// ExportJSONStdout dumps a run to standard output.
func ExportJSONStdout(meta *RunMetadata, samples []Sample) error {
	return writeExport(json.NewEncoder(os.Stdout), meta, samples)
}

func writeExport(enc *json.Encoder, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		ID:          meta.ID,
		Dt:          meta.Dt,
		Duration:    meta.Duration,
		Steps:       len(samples),
		EnergyDrift: meta.EnergyDrift,
		Times:       make([]float64, len(samples)),
		Positions:   make([][3]float64, len(samples)),
		Rotations:   make([][4]float64, len(samples)),
	}
	for i, sm := range samples {
		data.Times[i] = sm.Time
		data.Positions[i] = sm.Pos
		data.Rotations[i] = sm.Rot
	}
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
