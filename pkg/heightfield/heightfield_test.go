package heightfield

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlPointCount(t *testing.T) {
	assert.Equal(t, 3, ControlPointCount(10, 10))
	assert.Equal(t, 32, ControlPointCount(256, 256))
}

func TestRandomPointsInBounds(t *testing.T) {
	points := RandomPoints(rand.New(rand.NewSource(3)), 16, 8, 10, 200)
	require.Len(t, points, 200)
	for _, p := range points {
		assert.True(t, p.X >= 0 && p.X < 16)
		assert.True(t, p.Z >= 0 && p.Z < 8)
		assert.True(t, p.Height >= 0 && p.Height <= 10)
	}
}

func TestInterpolateExactControlPoint(t *testing.T) {
	points := []Point{
		{X: 2, Z: 3, Height: 17},
		{X: 0, Z: 0, Height: 60},
		{X: 7, Z: 7, Height: 1},
		{X: 3, Z: 3, Height: 40},
	}
	opts := InterpolateOptions{MaxHeight: 64, Jitter: 1}

	for seed := int64(0); seed < 5; seed++ {
		f, err := Interpolate(8, 8, points, opts, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.Equal(t, 17, f.Height(2, 3))
		assert.Equal(t, 60, f.Height(0, 0))
		assert.Equal(t, 1, f.Height(7, 7))
	}
}

func TestInterpolateWeightedAverage(t *testing.T) {
	// Midway between two equal-distance points the average is exact.
	points := []Point{{X: 0, Z: 0, Height: 10}, {X: 4, Z: 0, Height: 30}}
	f, err := Interpolate(5, 1, points, InterpolateOptions{MaxHeight: 64}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 20, f.Height(2, 0))

	lo, hi := f.Range()
	assert.GreaterOrEqual(t, lo, 10)
	assert.LessOrEqual(t, hi, 30)
}

func TestInterpolateJitterClamped(t *testing.T) {
	points := []Point{{X: 0, Z: 0, Height: 8}, {X: 3, Z: 3, Height: 8}}
	f, err := Interpolate(4, 4, points, InterpolateOptions{MaxHeight: 8, Jitter: 1}, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.NoError(t, f.Validate(4, 8, 4))
}

func TestInterpolateNoPoints(t *testing.T) {
	_, err := Interpolate(4, 4, nil, InterpolateOptions{MaxHeight: 8}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestPerlinRange(t *testing.T) {
	f, err := Perlin(32, 32, PerlinOptions{MaxHeight: 20, Alpha: 2, Beta: 2, Octaves: 3, Scale: 0.05, Seed: 42})
	require.NoError(t, err)
	require.NoError(t, f.Validate(32, 20, 32))
}

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader("[1][2][3]\n[4][5][60]\n"))
	require.NoError(t, err)

	x, z := f.Size()
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, z)
	assert.Equal(t, 2, f.Height(1, 0))
	assert.Equal(t, 60, f.Height(2, 1))
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"missing trailing newline", "[1][2]\n[3][4]"},
		{"missing open bracket", "[1]2]\n"},
		{"missing close bracket", "[1][2\n"},
		{"negative height", "[1][-2]\n"},
		{"not a number", "[1][x]\n"},
		{"empty row", "[1]\n\n"},
		{"ragged rows", "[1][2]\n[3]\n"},
		{"carriage return", "[1][2]\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	points := RandomPoints(rand.New(rand.NewSource(5)), 12, 9, 30, 4)
	f, err := Interpolate(12, 9, points, InterpolateOptions{MaxHeight: 30, Jitter: 1}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "heights.txt")
	require.NoError(t, Save(path, f))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestEncodeFormat(t *testing.T) {
	f, err := NewField(2, 2)
	require.NoError(t, err)
	f.Set(0, 0, 3)
	f.Set(1, 1, 12)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f))
	assert.Equal(t, "[3][0]\n[0][12]\n", buf.String())
}

func TestValidate(t *testing.T) {
	f, err := NewField(2, 2)
	require.NoError(t, err)
	f.Set(1, 0, 9)

	assert.NoError(t, f.Validate(2, 9, 2))
	assert.Error(t, f.Validate(2, 8, 2))
	assert.Error(t, f.Validate(3, 9, 2))
}
