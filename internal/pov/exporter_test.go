package pov_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ravi-l/povsim/internal/config"
	"github.com/ravi-l/povsim/internal/pov"
	"github.com/ravi-l/povsim/internal/scene"
)

var _ = Describe("Exporter", func() {
	var (
		base     string
		template string
		sc       *scene.Scene
		exp      *pov.Exporter
	)

	BeforeEach(func() {
		tmp := GinkgoT().TempDir()
		base = filepath.Join(tmp, "POVRAY_1")
		template = filepath.Join(tmp, "povray_template.pov")
		Expect(os.WriteFile(template, []byte("#declare TemplateMarker = 1;\n"), 0644)).To(Succeed())

		var err error
		sc, err = scene.BuildPendulum(config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		exp = pov.New(sc.System)
		exp.SetTemplateFile(template)
		exp.SetCamera(sc.Camera)
		exp.SetLight(sc.Light)
		exp.SetCustomCommands(sc.CustomCommands)
		exp.AddAll()
	})

	Describe("SetBasePath", func() {
		It("creates the base path with output and anim subdirectories", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())

			for _, d := range []string{base, filepath.Join(base, "output"), filepath.Join(base, "anim")} {
				info, err := os.Stat(d)
				Expect(err).NotTo(HaveOccurred())
				Expect(info.IsDir()).To(BeTrue())
			}
		})

		It("fails when the base path cannot be created", func() {
			blocker := filepath.Join(GinkgoT().TempDir(), "file")
			Expect(os.WriteFile(blocker, nil, 0644)).To(Succeed())

			err := exp.SetBasePath(filepath.Join(blocker, "nested"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ExportScript", func() {
		It("refuses to run without a base path", func() {
			Expect(exp.ExportScript()).To(MatchError(pov.ErrNoBasePath))
		})

		It("fails when the template is missing", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			exp.SetTemplateFile(filepath.Join(base, "no_such_template.pov"))

			Expect(exp.ExportScript()).To(MatchError(pov.ErrNoTemplate))
		})

		It("writes the scene script with template, camera, light and custom commands", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())

			data, err := os.ReadFile(exp.ScriptPath())
			Expect(err).NotTo(HaveOccurred())
			script := string(data)

			Expect(script).To(ContainSubstring("TemplateMarker"))
			Expect(script).To(ContainSubstring("camera {"))
			Expect(script).To(ContainSubstring("location <0, 3, -10>"))
			Expect(script).To(ContainSubstring("light_source {"))
			Expect(script).To(ContainSubstring("shadowless"))
			Expect(script).To(ContainSubstring("area_light"))
			Expect(script).To(ContainSubstring("#include frame_file"))
		})

		It("writes the render control ini next to the script", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())

			data, err := os.ReadFile(filepath.Join(base, "render_frames.pov.ini"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("Input_File_Name = render_frames.pov"))
			Expect(string(data)).To(ContainSubstring("Initial_Frame = 0"))
		})
	})

	Describe("ExportData", func() {
		It("refuses to run before ExportScript", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportData()).To(MatchError(pov.ErrScriptNotExported))
		})

		It("writes one numbered frame pair per call", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())

			for i := 0; i < 3; i++ {
				Expect(sc.System.DoStep(0.01)).To(Succeed())
				Expect(exp.ExportData()).To(Succeed())
			}

			Expect(exp.FrameCount()).To(Equal(3))
			for i := 0; i < 3; i++ {
				povName := filepath.Join(base, "output", "state000"+string(rune('0'+i))+".pov")
				datName := filepath.Join(base, "output", "state000"+string(rune('0'+i))+".dat")
				Expect(povName).To(BeARegularFile())
				Expect(datName).To(BeARegularFile())
			}
		})

		It("emits geometry for every registered body", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())
			Expect(exp.ExportData()).To(Succeed())

			data, err := os.ReadFile(filepath.Join(base, "output", "state0000.pov"))
			Expect(err).NotTo(HaveOccurred())
			frame := string(data)

			Expect(frame).To(ContainSubstring("box {"))
			// floor texture and pendulum color both survive; the texture
			// reference is the data-path-resolved file, not the config string
			Expect(frame).To(ContainSubstring("image_map"))
			Expect(frame).To(ContainSubstring(`png "` + filepath.Join("data", "textures", "checker.png") + `"`))
			Expect(frame).To(ContainSubstring("color rgb <0.2, 0.5, 0.25>"))
		})

		It("tracks the frame range in the ini", func() {
			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())

			for i := 0; i < 5; i++ {
				Expect(exp.ExportData()).To(Succeed())
			}

			data, err := os.ReadFile(filepath.Join(base, "render_frames.pov.ini"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(ContainSubstring("Final_Frame = 4"))
		})
	})

	Describe("naming overrides", func() {
		It("honors custom script and data file names", func() {
			exp.SetOutputScriptFile("my_scene.pov")
			exp.SetOutputDataFilebase("my_state")

			Expect(exp.SetBasePath(base)).To(Succeed())
			Expect(exp.ExportScript()).To(Succeed())
			Expect(exp.ExportData()).To(Succeed())

			Expect(filepath.Join(base, "my_scene.pov")).To(BeARegularFile())
			Expect(filepath.Join(base, "output", "my_state0000.pov")).To(BeARegularFile())
		})
	})
})
