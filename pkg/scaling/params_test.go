package scaling

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	bad := []Params{
		{L0: 0, Nc: 1, Dc: 1, AlphaN: 1, AlphaD: 1},
		{L0: 1, Nc: -1, Dc: 1, AlphaN: 1, AlphaD: 1},
		{L0: 1, Nc: 1, Dc: math.Inf(1), AlphaN: 1, AlphaD: 1},
		{L0: 1, Nc: 1, Dc: 1, AlphaN: math.NaN(), AlphaD: 1},
		{L0: 1, Nc: 1, Dc: 1, AlphaN: 1, AlphaD: 0},
	}
	for i, p := range bad {
		assert.ErrorIs(t, p.Validate(), ErrBadParam, "case %d", i)
	}
}

func TestLoadParams_Full(t *testing.T) {
	path := writeFile(t, `
l_0: 1.8
n_c: 8.8e13
d_c: 5.4e13
alpha_n: 0.076
alpha_d: 0.095
`)
	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, Params{L0: 1.8, Nc: 8.8e13, Dc: 5.4e13, AlphaN: 0.076, AlphaD: 0.095}, p)
}

func TestLoadParams_PartialKeepsDefaults(t *testing.T) {
	p, err := LoadParams(writeFile(t, "alpha_d: 0.3\n"))
	require.NoError(t, err)

	want := DefaultParams()
	want.AlphaD = 0.3
	assert.Equal(t, want, p)
}

func TestLoadParams_Errors(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadParams(writeFile(t, "l_0: [1, 2\n"))
	require.Error(t, err)

	_, err = LoadParams(writeFile(t, "n_c: -5\n"))
	require.ErrorIs(t, err, ErrBadParam)
}
