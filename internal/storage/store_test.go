package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ravi-l/povsim/internal/engine"
	"github.com/ravi-l/povsim/internal/vec"
)

func makeSamples(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{
			Time: float64(i) * 0.01,
			Pos:  [3]float64{float64(i), 3, 0},
			Rot:  [4]float64{1, 0, 0, 0},
		}
	}
	return samples
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{Dt: 0.01, Duration: 1.5, EnergyDrift: 0.001, OutputDir: "POVRAY_1"}
	runID, err := st.Save(meta, makeSamples(150))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Dt != 0.01 || loaded.Duration != 1.5 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Steps != 150 {
		t.Errorf("expected 150 steps recorded, got %d", loaded.Steps)
	}
}

func TestLoadSamples(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(RunMetadata{Dt: 0.01, Duration: 0.5}, makeSamples(50))
	if err != nil {
		t.Fatal(err)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 50 {
		t.Fatalf("expected 50 samples, got %d", len(samples))
	}
	if samples[10].Pos[0] != 10 {
		t.Errorf("sample round-trip mismatch: %+v", samples[10])
	}
	if samples[10].Rot[0] != 1 {
		t.Errorf("quaternion round-trip mismatch: %+v", samples[10])
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir should not error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save(RunMetadata{Dt: 0.01, Duration: 1.5}, makeSamples(3)); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	meta := &RunMetadata{ID: "pend_1", Dt: 0.01, Duration: 0.3, EnergyDrift: 0.002}

	if err := ExportJSON(path, meta, makeSamples(30)); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var dump ExportData
	if err := json.Unmarshal(data, &dump); err != nil {
		t.Fatalf("invalid json written: %v", err)
	}
	if dump.ID != "pend_1" || dump.Steps != 30 {
		t.Errorf("unexpected dump header: %+v", dump)
	}
	if len(dump.Times) != 30 || len(dump.Positions) != 30 {
		t.Errorf("expected 30 entries, got %d times / %d positions", len(dump.Times), len(dump.Positions))
	}
	if dump.Positions[10][0] != 10 {
		t.Errorf("sample mismatch in dump: %+v", dump.Positions[10])
	}
}

func TestSampleBody(t *testing.T) {
	b, err := engine.NewBoxBody(1, 1, 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	b.SetPos(vec.New(1, 2, 3))

	s := SampleBody(0.5, b)
	if s.Time != 0.5 || s.Pos != [3]float64{1, 2, 3} {
		t.Errorf("unexpected sample %+v", s)
	}
	if s.Rot != [4]float64{1, 0, 0, 0} {
		t.Errorf("expected identity rotation, got %+v", s.Rot)
	}
}
