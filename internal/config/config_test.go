package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/androidfix/internal/fsops"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(fsops.NewRealFS(), filepath.Join(t.TempDir(), FileName), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Path)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(fsops.NewRealFS(), filepath.Join(t.TempDir(), FileName), true)
	require.Error(t, err)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `namespacePrefix: org.acme.
overrides:
  legacy_plugin: com.legacy.plugin
compileSdk: 35
jvmTarget: "17"
extraSubprojects:
  - packages/local/android
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(fsops.NewRealFS(), path, true)
	require.NoError(t, err)

	assert.Equal(t, "org.acme.", cfg.NamespacePrefix)
	assert.Equal(t, 35, cfg.CompileSdk)
	assert.Equal(t, "17", cfg.JvmTarget)
	assert.Equal(t, DefaultJavaVersion, cfg.JavaVersion)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, []string{"packages/local/android"}, cfg.ExtraSubprojects)
	assert.Equal(t, "com.legacy.plugin", cfg.Overrides["legacy_plugin"])
	assert.Equal(t, "com.carius.ar_flutter_plugin", cfg.Overrides["ar_flutter_plugin"])
	assert.Equal(t, path, cfg.Path)

	assert.Equal(t, "org.acme.my_plugin", cfg.Resolver().Resolve("my-plugin", ""))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "compileSdk: [\n"},
		{name: "negative sdk", content: "compileSdk: -1\n"},
		{name: "zero workers", content: "workers: 0\n"},
		{name: "bad java version", content: "javaVersion: eleven\n"},
		{name: "prefix without dot", content: "namespacePrefix: com.acme\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := Load(fsops.NewRealFS(), path, true)
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvConfig, "")
	assert.Equal(t, "/x/custom.yaml", Resolve("/x/custom.yaml", "/root"))
	assert.Equal(t, filepath.Join("/root", FileName), Resolve("", "/root"))

	t.Setenv(EnvConfig, "/env/androidfix.yaml")
	assert.Equal(t, "/env/androidfix.yaml", Resolve("", "/root"))
}
