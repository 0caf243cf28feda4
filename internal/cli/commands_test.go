package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chazu/cadkit/pkg/dxfio"
	"github.com/chazu/cadkit/pkg/geom"
	"github.com/chazu/cadkit/pkg/kernel"
)

// runCLI executes the root command with args and returns everything written
// to standard output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

const boltScript = `
(defblock "bolt"
  (circle (vec3 0 0 0) 3)
  (line (vec3 -3 0 0) (vec3 3 0 0)))
(insert "bolt" :at (vec3 10 0 0))
(insert "bolt" :at (vec3 0 20 0) :rotation 90)
(line (vec3 0 0 0) (vec3 5 0 0) :layer "walls")
(cube (vec3 0 0 0) 2 :layer "solid")
`

func TestTransformCommand(t *testing.T) {
	script := writeFile(t, "bolt.cad", boltScript)
	output := filepath.Join(t.TempDir(), "out.dxf")

	stdout, err := runCLI(t, "transform", script, "-o", output, "--translate", "1,2,0", "--flatten")
	require.NoError(t, err)
	require.Contains(t, stdout, output)

	doc, err := dxfio.Load(output, nil)
	require.NoError(t, err)
	// Two flattened bolts plus the wall line.
	require.Len(t, doc.Circles(), 2)
	require.Len(t, doc.Lines(), 3)
	require.Len(t, doc.Faces(), 6)

	found := false
	for _, c := range doc.Circles() {
		if c.Center.EqualsTol(1e-9, geom.NewVector3D(11, 2, 0)) {
			found = true
		}
	}
	require.True(t, found, "expected a bolt circle at (11,2,0)")
}

func TestTransformFlattenTranslatesOnce(t *testing.T) {
	script := writeFile(t, "post.cad", `
(defblock "post"
  (line (vec3 0 0 0) (vec3 0 0 4))
  (point (vec3 1 0 0))
  (circle (vec3 0 0 0) 2))
(insert "post" :at (vec3 5 0 0))
`)
	output := filepath.Join(t.TempDir(), "out.dxf")

	_, err := runCLI(t, "transform", script, "-o", output, "--translate", "10,0,0", "--flatten")
	require.NoError(t, err)

	doc, err := dxfio.Load(output, nil)
	require.NoError(t, err)

	require.Len(t, doc.Lines(), 1)
	ln := doc.Lines()[0]
	require.True(t, ln.Start.EqualsTol(1e-9, geom.NewVector3D(15, 0, 0)), "start %s", ln.Start)
	require.True(t, ln.End.EqualsTol(1e-9, geom.NewVector3D(15, 0, 4)), "end %s", ln.End)

	require.Len(t, doc.Points(), 1)
	require.True(t, doc.Points()[0].Position.EqualsTol(1e-9, geom.NewVector3D(16, 0, 0)))

	require.Len(t, doc.Circles(), 1)
	require.True(t, doc.Circles()[0].Center.EqualsTol(1e-9, geom.NewVector3D(15, 0, 0)))
	require.InDelta(t, 2, doc.Circles()[0].Radius, 1e-9)
}

func TestTransformLayerOverride(t *testing.T) {
	script := writeFile(t, "walls.cad", `(line (vec3 0 0 0) (vec3 5 0 0) :layer "walls")`)
	output := filepath.Join(t.TempDir(), "out.dxf")

	_, err := runCLI(t, "transform", script, "-o", output, "--layer", "moved", "--scale", "2,2,2")
	require.NoError(t, err)

	doc, err := dxfio.Load(output, nil)
	require.NoError(t, err)
	require.Len(t, doc.Lines(), 1)
	ln := doc.Lines()[0]
	require.Equal(t, "moved", ln.Layer().Name)
	require.True(t, ln.End.EqualsTol(1e-9, geom.NewVector3D(10, 0, 0)))
}

func TestTransformFlagErrors(t *testing.T) {
	script := writeFile(t, "walls.cad", `(line (vec3 0 0 0) (vec3 5 0 0))`)
	output := filepath.Join(t.TempDir(), "out.dxf")

	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"transform", script}},
		{"short vector", []string{"transform", script, "-o", output, "--translate", "1,2"}},
		{"zero normal", []string{"transform", script, "-o", output, "--normal", "0,0,0"}},
		{"script error", []string{"transform", writeFile(t, "bad.cad", "(circle (vec3 0 0 0)"), "-o", output}},
		{"missing input", []string{"transform", filepath.Join(t.TempDir(), "none.cad"), "-o", output}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestPointFunc(t *testing.T) {
	cfg := DefaultConfig()

	fn, err := transformOptions{
		translate: []float64{1, 0, 0},
		scale:     []float64{2, 2, 2},
	}.pointFunc(cfg)
	require.NoError(t, err)
	require.True(t, fn(geom.NewVector3D(1, 1, 1)).EqualsTol(1e-12, geom.NewVector3D(3, 2, 2)))

	// An OCS with normal X maps object Z onto world X.
	fn, err = transformOptions{normal: []float64{1, 0, 0}}.pointFunc(cfg)
	require.NoError(t, err)
	require.True(t, fn(geom.NewVector3D(0, 0, 4)).EqualsTol(1e-12, geom.NewVector3D(4, 0, 0)))

	// A normal within tolerance of Z keeps the world frame.
	fn, err = transformOptions{normal: []float64{0, 0, 5}}.pointFunc(cfg)
	require.NoError(t, err)
	require.Equal(t, geom.NewVector3D(1, 2, 3), fn(geom.NewVector3D(1, 2, 3)))
}

func TestExplodeCommand(t *testing.T) {
	script := writeFile(t, "bolt.cad", boltScript)
	output := filepath.Join(t.TempDir(), "circles.dxf")

	_, err := runCLI(t, "explode", script, "-o", output)
	require.NoError(t, err)

	doc, err := dxfio.Load(output, nil)
	require.NoError(t, err)
	require.Len(t, doc.Circles(), 2)
	require.Empty(t, doc.Lines())

	centers := []geom.Vector3D{doc.Circles()[0].Center, doc.Circles()[1].Center}
	require.True(t, centers[0].EqualsTol(1e-9, geom.NewVector3D(10, 0, 0)), "center %s", centers[0])
	require.True(t, centers[1].EqualsTol(1e-9, geom.NewVector3D(0, 20, 0)), "center %s", centers[1])
	require.InDelta(t, 3, doc.Circles()[0].Radius, 1e-9)
}

func TestMeshCommand(t *testing.T) {
	script := writeFile(t, "bolt.cad", boltScript)

	stdout, err := runCLI(t, "mesh", script)
	require.NoError(t, err)

	var meshes []kernel.Mesh
	require.NoError(t, json.Unmarshal([]byte(stdout), &meshes))
	require.Len(t, meshes, 1)
	require.Equal(t, "solid", meshes[0].PartName)
	require.Equal(t, 12, meshes[0].TriangleCount())

	dir := t.TempDir()
	output := filepath.Join(dir, "mesh.json")
	stl := filepath.Join(dir, "mesh.stl")
	_, err = runCLI(t, "mesh", script, "-o", output, "--stl", stl)
	require.NoError(t, err)
	require.FileExists(t, stl)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &meshes))
	require.Len(t, meshes, 1)
}

func TestMeshEmptyDrawing(t *testing.T) {
	stdout, err := runCLI(t, "mesh", writeFile(t, "empty.cad", ""))
	require.NoError(t, err)
	require.JSONEq(t, "[]", stdout)
}

func TestInspectCommand(t *testing.T) {
	stdout, err := runCLI(t, "inspect", writeFile(t, "bolt.cad", boltScript))
	require.NoError(t, err)
	require.Contains(t, stdout, "bolt (2 entities)")
	require.Contains(t, stdout, "No validation errors")

	stdout, err = runCLI(t, "inspect", writeFile(t, "bad.cad", "(circle (vec3 0 0 0) -1)\n(line (vec3 1 1 1) (vec3 1 1 1))"))
	require.Error(t, err)
	require.Contains(t, stdout, "radius")
	require.Contains(t, stdout, "shorter than the length tolerance")
}

func TestInspectDXF(t *testing.T) {
	script := writeFile(t, "walls.cad", `(line (vec3 0 0 0) (vec3 5 0 0) :layer "walls")`)
	output := filepath.Join(t.TempDir(), "walls.dxf")
	_, err := runCLI(t, "transform", script, "-o", output)
	require.NoError(t, err)

	stdout, err := runCLI(t, "inspect", output)
	require.NoError(t, err)
	require.Contains(t, stdout, "walls")
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		pq, from, to string
		value        float64
		delta        bool
		want         float64
	}{
		{"length", "in", "mm", 1, false, 25.4},
		{"Length", "m", "km", 1500, false, 1.5},
		{"temperature", "C", "F", 100, false, 212},
		{"temperature", "C", "K", 0, false, 273.15},
		{"temperature", "C", "F", 5, true, 9},
		{"planeangle", "deg", "rad", 180, false, math.Pi},
	}

	for _, tt := range tests {
		got, err := convertValue(tt.pq, tt.value, tt.from, tt.to, tt.delta)
		require.NoError(t, err)
		require.InDelta(t, tt.want, got, 1e-9, "%s %g %s -> %s", tt.pq, tt.value, tt.from, tt.to)
	}

	_, err := convertValue("length", 1, "m", "kg", false)
	require.Error(t, err)
	_, err = convertValue("volume", 1, "m3", "l", false)
	require.Error(t, err)
}

func TestUnitsCommands(t *testing.T) {
	stdout, err := runCLI(t, "units", "convert", "length", "2", "m", "mm")
	require.NoError(t, err)
	require.Equal(t, "2000 mm\n", stdout)

	_, err = runCLI(t, "units", "convert", "length", "abc", "in", "mm")
	require.Error(t, err)

	stdout, err = runCLI(t, "units", "list", "length")
	require.NoError(t, err)
	require.Contains(t, stdout, "mm")

	config := writeFile(t, "cadkit.toml", "[units.length]\nunit = \"mm\"\n")
	stdout, err = runCLI(t, "units", "domain", "--config", config)
	require.NoError(t, err)
	require.Contains(t, stdout, "mm  tol 0.1")
}
