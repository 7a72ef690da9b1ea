package datapath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataFile(t *testing.T) {
	defer Reset()

	SetDataPath("/srv/assets")
	got := GetDataFile("textures/checker.png")
	want := filepath.Join("/srv/assets", "textures", "checker.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestMustExist(t *testing.T) {
	defer Reset()

	tmp := t.TempDir()
	SetDataPath(tmp)

	if _, err := MustExist("missing.pov"); err == nil {
		t.Error("expected error for missing file")
	}

	p := filepath.Join(tmp, "template.pov")
	if err := os.WriteFile(p, []byte("// template\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := MustExist("template.pov")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != p {
		t.Errorf("expected %s, got %s", p, got)
	}
}
