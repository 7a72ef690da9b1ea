package pov

import (
	"fmt"
	"os"
	"strings"

	"github.com/ravi-l/povsim/internal/engine"
	"github.com/ravi-l/povsim/internal/vec"
)

func povVec(v vec.Vec3) string {
	return fmt.Sprintf("<%g, %g, %g>", v.X, v.Y, v.Z)
}

func povColor(c vec.Color) string {
	return fmt.Sprintf("rgb <%g, %g, %g>", c.R, c.G, c.B)
}

// ExportScript writes the render control .ini and the main scene script.
// It must run once before the first ExportData; the per-frame files it
// references are produced by ExportData afterwards.
func (e *Exporter) ExportScript() error {
	if e.basePath == "" {
		return ErrNoBasePath
	}

	template, err := os.ReadFile(e.templateFile)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNoTemplate, e.templateFile)
	}

	var sb strings.Builder
	sb.WriteString("// Scene script generated by povsim. Render with the matching .ini file.\n")
	sb.WriteString("#version 3.7;\n\n")
	sb.Write(template)
	sb.WriteString("\n")

	if e.camera != nil {
		sb.WriteString("camera {\n")
		fmt.Fprintf(&sb, "  angle %g\n", e.camera.Angle)
		fmt.Fprintf(&sb, "  location %s\n", povVec(e.camera.Position))
		fmt.Fprintf(&sb, "  look_at %s\n", povVec(e.camera.Aim))
		fmt.Fprintf(&sb, "  sky %s\n", povVec(e.camera.Up))
		sb.WriteString("  right -x*image_width/image_height\n")
		sb.WriteString("}\n\n")
	}

	if e.light != nil {
		sb.WriteString("light_source {\n")
		fmt.Fprintf(&sb, "  %s\n", povVec(e.light.Position))
		fmt.Fprintf(&sb, "  color %s\n", povColor(e.light.Color))
		if !e.light.CastShadows {
			sb.WriteString("  shadowless\n")
		}
		sb.WriteString("}\n\n")
	}

	if e.custom != "" {
		sb.WriteString(e.custom)
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "#declare frame_file = concat(\"%s/%s\", str(frame_number, -4, 0), \".pov\")\n",
		outputSubdir, e.dataFilebase)
	sb.WriteString("#include frame_file\n")

	if err := os.WriteFile(e.ScriptPath(), []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("pov: writing script: %w", err)
	}

	if err := e.writeIni(); err != nil {
		return err
	}

	e.scriptWritten = true
	return nil
}

// writeIni emits the render control file. The final frame number tracks the
// exported frame count, so it is rewritten after every ExportData.
func (e *Exporter) writeIni() error {
	finalFrame := e.frame - 1
	if finalFrame < 0 {
		finalFrame = 0
	}

	var sb strings.Builder
	sb.WriteString("; Render control generated by povsim\n")
	fmt.Fprintf(&sb, "Input_File_Name = %s\n", e.scriptFile)
	fmt.Fprintf(&sb, "Output_File_Name = %s/%s\n", animSubdir, e.pictureFilebase)
	sb.WriteString("Antialias = On\n")
	sb.WriteString("Antialias_Threshold = 0.1\n")
	sb.WriteString("Width = 800\n")
	sb.WriteString("Height = 600\n")
	sb.WriteString("Initial_Frame = 0\n")
	fmt.Fprintf(&sb, "Final_Frame = %d\n", finalFrame)
	sb.WriteString("Initial_Clock = 0\n")
	fmt.Fprintf(&sb, "Final_Clock = %d\n", finalFrame)
	sb.WriteString("Pause_when_Done = Off\n")

	if err := os.WriteFile(e.iniPath(), []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("pov: writing ini: %w", err)
	}
	return nil
}

// ExportData writes the next numbered frame pair (geometry .pov and raw pose
// .dat) and refreshes the ini frame range.
func (e *Exporter) ExportData() error {
	if e.basePath == "" {
		return ErrNoBasePath
	}
	if !e.scriptWritten {
		return ErrScriptNotExported
	}

	if err := e.writeFramePov(); err != nil {
		return err
	}
	if err := e.writeFrameDat(); err != nil {
		return err
	}

	e.frame++
	return e.writeIni()
}

func (e *Exporter) writeFramePov() error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "// frame %d, t=%.6f\n", e.frame, e.sys.Time())

	for id, b := range e.bodies {
		fmt.Fprintf(&sb, "// body %d\n", id)
		sb.WriteString("box {\n")
		half := b.Size.Scale(0.5)
		fmt.Fprintf(&sb, "  %s, %s\n", povVec(half.Scale(-1)), povVec(half))
		sb.WriteString(pigment(b))
		sb.WriteString(matrixTransform(b))
		sb.WriteString("}\n")
	}

	path := e.framePath(e.frame, ".pov")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("pov: writing frame %d: %w", e.frame, err)
	}
	return nil
}

func (e *Exporter) writeFrameDat() error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# t=%.6f bodies=%d\n", e.sys.Time(), len(e.bodies))
	for id, b := range e.bodies {
		fmt.Fprintf(&sb, "%d %.9g %.9g %.9g %.9g %.9g %.9g %.9g\n",
			id,
			b.Pos.X, b.Pos.Y, b.Pos.Z,
			b.Rot.W, b.Rot.X, b.Rot.Y, b.Rot.Z)
	}

	path := e.framePath(e.frame, ".dat")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("pov: writing frame %d: %w", e.frame, err)
	}
	return nil
}

func pigment(b *engine.Body) string {
	switch {
	case b.Visual.Texture != "":
		return fmt.Sprintf("  pigment { image_map { png \"%s\" } scale <%g, %g, 1> }\n",
			b.Visual.Texture, b.Visual.TextureScaleU, b.Visual.TextureScaleV)
	case b.Visual.Color != nil:
		return fmt.Sprintf("  pigment { color %s }\n", povColor(*b.Visual.Color))
	default:
		return "  pigment { color rgb <0.6, 0.6, 0.6> }\n"
	}
}

// matrixTransform emits the POV matrix statement for the body pose. POV takes
// the images of the basis vectors, i.e. the columns of the rotation matrix,
// then the translation.
func matrixTransform(b *engine.Body) string {
	m := b.Rot.Matrix()
	return fmt.Sprintf("  matrix <%g, %g, %g, %g, %g, %g, %g, %g, %g, %g, %g, %g>\n",
		m[0][0], m[1][0], m[2][0],
		m[0][1], m[1][1], m[2][1],
		m[0][2], m[1][2], m[2][2],
		b.Pos.X, b.Pos.Y, b.Pos.Z)
}
