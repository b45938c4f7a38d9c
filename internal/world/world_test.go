package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/stone/internal/config"
	"github.com/Faultbox/stone/pkg/heightfield"
	"github.com/Faultbox/stone/pkg/mesh"
	"github.com/Faultbox/stone/pkg/occlusion"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.World.SizeX = 12
	cfg.World.SizeY = 8
	cfg.World.SizeZ = 10
	cfg.World.Seed = 42
	cfg.Occlusion.Rays = 16
	cfg.Occlusion.PathLength = 16
	cfg.Occlusion.Workers = 2
	return cfg
}

func TestGenerate(t *testing.T) {
	w, err := NewGenerator(smallConfig(), nil).Generate()
	require.NoError(t, err)

	assert.NotEmpty(t, w.RunID)
	assert.Equal(t, int64(42), w.Seed)

	x, y, z := w.Grid.Size()
	assert.Equal(t, [3]int{12, 8, 10}, [3]int{x, y, z})

	lo, hi := w.Heights.Range()
	assert.GreaterOrEqual(t, lo, 0)
	assert.LessOrEqual(t, hi, 8)

	for zz := 0; zz < 10; zz++ {
		for xx := 0; xx < 12; xx++ {
			h := w.Heights.Height(xx, zz)
			for yy := 0; yy < 8; yy++ {
				assert.Equal(t, yy < h, w.Grid.IsSolid(xx, yy, zz))
			}
		}
	}

	assert.Equal(t, w.Grid.CountSolid(), w.Stats.Solid)
	assert.Equal(t, w.Stats.Candidates*16, int(w.Stats.RaysCast))
	assert.Zero(t, w.Mesh.VertexCount()%mesh.VerticesPerQuad)
	for _, stage := range []string{StageHeights, StageVoxels, StageOcclusion, StageMesh} {
		assert.Contains(t, w.Stats.Durations, stage)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewGenerator(smallConfig(), nil).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(smallConfig(), nil).Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Mesh.Vertices, b.Mesh.Vertices)
}

func TestGeneratePerlin(t *testing.T) {
	cfg := smallConfig()
	cfg.World.HeightMode = config.HeightModePerlin

	w, err := NewGenerator(cfg, nil).Generate()
	require.NoError(t, err)
	_, hi := w.Heights.Range()
	assert.LessOrEqual(t, hi, 8)
}

func TestGenerateFromHeightMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heights.txt")
	require.NoError(t, os.WriteFile(path, []byte("[1][2][3]\n[0][0][4]\n"), 0o644))

	cfg := smallConfig()
	cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ = 3, 4, 2
	cfg.World.HeightMap = path

	w, err := NewGenerator(cfg, nil).Generate()
	require.NoError(t, err)
	assert.Equal(t, 1+2+3+4, w.Stats.Solid)
}

func TestGenerateHeightMapMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heights.txt")
	require.NoError(t, os.WriteFile(path, []byte("[1][2]\n"), 0o644))

	cfg := smallConfig()
	cfg.World.HeightMap = path

	_, err := NewGenerator(cfg, nil).Generate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), StageHeights)
}

func TestGenerateDegenerateRays(t *testing.T) {
	cfg := smallConfig()
	cfg.Occlusion.Rays = 1

	_, err := NewGenerator(cfg, nil).Generate()
	var degenerate *occlusion.DegenerateRaysError
	require.ErrorAs(t, err, &degenerate)
	assert.Contains(t, err.Error(), StageOcclusion)
}

func TestExport(t *testing.T) {
	w, err := NewGenerator(smallConfig(), nil).Generate()
	require.NoError(t, err)

	dir := t.TempDir()
	out := config.OutputConfig{
		MeshFile:      filepath.Join(dir, "world.stvb"),
		HeightMapFile: filepath.Join(dir, "heights.txt"),
	}
	require.NoError(t, w.Export(out))

	m, err := mesh.ReadFile(out.MeshFile)
	require.NoError(t, err)
	assert.Equal(t, w.Mesh.VertexCount(), m.VertexCount())

	f, err := heightfield.Load(out.HeightMapFile)
	require.NoError(t, err)
	assert.Equal(t, w.Heights.Height(3, 4), f.Height(3, 4))
}
