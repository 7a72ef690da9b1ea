// Package pov serializes engine scenes into POV-Ray input files for offline
// rendering.
//
// The exporter follows a two-phase protocol. [Exporter.ExportScript] runs
// once and writes the render control .ini plus the main scene script (render
// template, camera, light, custom commands, and a clock-indexed include of
// the per-frame state file). [Exporter.ExportData] runs once per simulation
// step and writes a numbered frame pair under output/: a .pov file with the
// posed geometry and a .dat file with the raw body poses.
//
// Rendering the generated files is POV-Ray's job; this package only writes
// its inputs.
package pov
