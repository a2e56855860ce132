package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Retrofit/internal/calc/options"
	"Retrofit/internal/calc/pipeline"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, JSON, FormatOf("a/b/project.JSON"))
	assert.Equal(t, YAML, FormatOf("building.yaml"))
	assert.Equal(t, YAML, FormatOf("building.yml"))
	assert.Equal(t, YAML, FormatOf("building"))
}

func TestLoadVariables(t *testing.T) {
	vars, err := LoadVariables("testdata/building.yaml")
	require.NoError(t, err)

	h, err := vars.Float("height")
	require.NoError(t, err)
	assert.Equal(t, 2.4, h)

	sel, ok := vars.Text("windows")
	require.True(t, ok)
	assert.Equal(t, "double", sel)
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog("testdata/catalog.yaml")
	require.NoError(t, err)

	u, ok := options.Resolve("windows", "u", options.Variables{"windows": "single"}, catalog, options.Baseline).Float()
	require.True(t, ok)
	assert.Equal(t, 5.0, u)

	key, ok := options.Resolve("spaceHeatingFuelType", "priceKey", options.Variables{"spaceHeatingFuelType": "gas"}, catalog, options.Baseline).Text()
	require.True(t, ok)
	assert.Equal(t, "gasPrice", key)
}

func TestLoadedFilesRunThroughPipeline(t *testing.T) {
	vars, err := LoadVariables("testdata/building.yaml")
	require.NoError(t, err)
	catalog, err := LoadCatalog("testdata/catalog.yaml")
	require.NoError(t, err)

	b, err := pipeline.Run(vars, catalog)
	require.NoError(t, err)
	assert.Equal(t, 43555.5, b.OutputA.TotalEnergyCosts)
	assert.Equal(t, 28488.0, b.OutputB.TotalEnergyCosts)
}

func TestLoadProject_JSONMatchesYAML(t *testing.T) {
	p, err := LoadProject("testdata/project.json")
	require.NoError(t, err)
	assert.Equal(t, "reference house", p.Name)

	vars, err := LoadVariables("testdata/building.yaml")
	require.NoError(t, err)
	catalog, err := LoadCatalog("testdata/catalog.yaml")
	require.NoError(t, err)

	fromJSON, err := pipeline.Run(p.Variables, p.Options)
	require.NoError(t, err)
	fromYAML, err := pipeline.Run(vars, catalog)
	require.NoError(t, err)
	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoadProject_DefaultsNameToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cottage.yaml")
	body := "variables:\n  height: 2.4\noptions:\n  roof:\n    values:\n      - base: {u: 0.2}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	p, err := LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, "cottage", p.Name)
	assert.Len(t, p.Options["roof"].Values, 1)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0o600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))

	_, err := LoadVariables(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadCatalog(empty)
	assert.Error(t, err)

	_, err = LoadVariables(broken)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "decode "))

	_, err = LoadProject(empty)
	assert.Error(t, err)
}

func TestDecode_UnknownFormat(t *testing.T) {
	var v options.Variables
	assert.Error(t, Decode(strings.NewReader("{}"), Format("toml"), &v))
}
