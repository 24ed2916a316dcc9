package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Import.HasHeader)
	assert.Equal(t, "", cfg.Separator())
	assert.True(t, cfg.Segments.Link)
	assert.Equal(t, "z", cfg.Render.Axis)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "neurotree.yaml")

	cfg := DefaultConfig()
	cfg.Import.Separator = "pipe"
	cfg.Import.Header = []string{"id", "parent", "name"}
	cfg.Render.Axis = "x"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "|", loaded.Separator())
}

func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neurotree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("import:\n  separator: tab\nsegments:\n  link: false\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "\t", cfg.Separator())
	assert.False(t, cfg.Segments.Link)
	assert.Equal(t, 512, cfg.Render.Width, "unset fields keep defaults")
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "import: [",
		"bad separator": "import:\n  separator: colon\n",
		"bad axis":      "render:\n  axis: w\n",
		"short header":  "import:\n  header: [id]\n",
		"zero width":    "render:\n  width: 0\n",
		"huge margin":   "render:\n  margin: 400\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "neurotree.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neurotree.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
