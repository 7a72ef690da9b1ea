package pov

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ravi-l/povsim/internal/engine"
	"github.com/ravi-l/povsim/internal/scene"
)

// Exporter failure modes.
var (
	// ErrNoBasePath indicates export was attempted before SetBasePath.
	ErrNoBasePath = errors.New("pov: base path not set")

	// ErrScriptNotExported indicates ExportData ran before ExportScript.
	ErrScriptNotExported = errors.New("pov: ExportScript must run before ExportData")

	// ErrNoTemplate indicates the render template file could not be read.
	ErrNoTemplate = errors.New("pov: template file missing")
)

const (
	outputSubdir = "output"
	animSubdir   = "anim"

	defaultScriptFile      = "render_frames.pov"
	defaultDataFilebase    = "state"
	defaultPictureFilebase = "picture"
)

// Exporter writes POV-Ray scene scripts and per-frame state files for one
// engine system.
type Exporter struct {
	sys *engine.System

	basePath        string
	templateFile    string
	scriptFile      string
	dataFilebase    string
	pictureFilebase string

	camera  *scene.Camera
	light   *scene.Light
	custom  string
	bodies  []*engine.Body
	bodyIDs map[*engine.Body]int

	frame         int
	scriptWritten bool
}

// New creates an exporter bound to sys. Call SetBasePath and ExportScript
// before the first ExportData.
func New(sys *engine.System) *Exporter {
	return &Exporter{
		sys:             sys,
		scriptFile:      defaultScriptFile,
		dataFilebase:    defaultDataFilebase,
		pictureFilebase: defaultPictureFilebase,
		bodyIDs:         make(map[*engine.Body]int),
	}
}

// SetTemplateFile points the exporter at the shared render template, usually
// resolved through the datapath package.
func (e *Exporter) SetTemplateFile(path string) {
	e.templateFile = path
}

// SetBasePath sets the export directory and creates it together with the
// output/ (frame files) and anim/ (rendered pictures) subdirectories.
func (e *Exporter) SetBasePath(dir string) error {
	for _, d := range []string{dir, filepath.Join(dir, outputSubdir), filepath.Join(dir, animSubdir)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("pov: creating %s: %w", d, err)
		}
	}
	e.basePath = dir
	return nil
}

// SetOutputScriptFile overrides the default scene script name.
func (e *Exporter) SetOutputScriptFile(name string) { e.scriptFile = name }

// SetOutputDataFilebase overrides the default frame file base name.
func (e *Exporter) SetOutputDataFilebase(base string) { e.dataFilebase = base }

// SetPictureFilebase overrides the base name of the rendered pictures.
func (e *Exporter) SetPictureFilebase(base string) { e.pictureFilebase = base }

func (e *Exporter) SetCamera(c scene.Camera) { e.camera = &c }
func (e *Exporter) SetLight(l scene.Light)   { e.light = &l }

// SetCustomCommands appends raw renderer statements to the scene script.
func (e *Exporter) SetCustomCommands(s string) { e.custom = s }

// Add registers a single body for export.
func (e *Exporter) Add(b *engine.Body) {
	if _, ok := e.bodyIDs[b]; ok {
		return
	}
	e.bodyIDs[b] = len(e.bodies)
	e.bodies = append(e.bodies, b)
}

// AddAll registers every body currently in the system.
func (e *Exporter) AddAll() {
	for _, b := range e.sys.Bodies() {
		e.Add(b)
	}
}

// FrameCount returns the number of frames exported so far.
func (e *Exporter) FrameCount() int { return e.frame }

// ScriptPath returns the full path of the scene script.
func (e *Exporter) ScriptPath() string {
	return filepath.Join(e.basePath, e.scriptFile)
}

func (e *Exporter) iniPath() string {
	return filepath.Join(e.basePath, e.scriptFile+".ini")
}

func (e *Exporter) framePath(frame int, ext string) string {
	name := fmt.Sprintf("%s%04d%s", e.dataFilebase, frame, ext)
	return filepath.Join(e.basePath, outputSubdir, name)
}
