package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Resolve_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.toml")
	project := `
manifest = "surface.yaml"
types = ["Contoso.Client"]
output_namespace = "Contoso.Services"
output_dir = "generated"
`
	require.NoError(t, os.WriteFile(path, []byte(project), 0644))

	tests := []struct {
		name      string
		cfg       Config
		manifest  string
		types     []string
		namespace string
		outputDir string
		strict    bool
	}{
		{
			name:      "file values",
			cfg:       Config{ConfigPath: path},
			manifest:  "surface.yaml",
			types:     []string{"Contoso.Client"},
			namespace: "Contoso.Services",
			outputDir: "generated",
		},
		{
			name: "flags win",
			cfg: Config{
				ConfigPath: path,
				Manifest:   "other.json",
				Types:      []string{"Contoso.Parser", "Contoso.Client"},
				Namespace:  "Contoso.Wrappers",
				OutputDir:  "out",
				Strict:     true,
			},
			manifest:  "other.json",
			types:     []string{"Contoso.Parser", "Contoso.Client"},
			namespace: "Contoso.Wrappers",
			outputDir: "out",
			strict:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := tt.cfg.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.manifest, resolved.Manifest)
			assert.Equal(t, tt.types, resolved.Types)
			assert.Equal(t, tt.namespace, resolved.OutputNamespace)
			assert.Equal(t, tt.outputDir, resolved.OutputDir)
			assert.Equal(t, tt.strict, resolved.Strict)
		})
	}
}
