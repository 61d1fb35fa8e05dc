package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

func TestCleaner_CleanGeneratedFiles(t *testing.T) {
	dir := newWorkspace(t)
	var buf bytes.Buffer

	require.NoError(t, newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml", OutputDir: "out"}))

	handwritten := filepath.Join(dir, "out", "Program.cs")
	require.NoError(t, os.WriteFile(handwritten, []byte("class Program {}\n"), 0644))

	cleaner := NewCleaner(utils.NewDiagnostics(utils.DiagnosticVerbose, &buf))
	removed, err := cleaner.CleanGeneratedFiles([]string{"out", "missing"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join("out", "IClientService.cs"),
		filepath.Join("out", "ClientService.cs"),
		filepath.Join("out", "IParserService.cs"),
		filepath.Join("out", "ParserService.cs"),
	}, removed)
	assert.FileExists(t, handwritten)
	assert.Contains(t, buf.String(), "Removed "+filepath.Join("out", "ClientService.cs"))

	removed, err = cleaner.CleanGeneratedFiles([]string{"out"})
	require.NoError(t, err)
	assert.Empty(t, removed)
}
