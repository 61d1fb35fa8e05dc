package cli

import (
	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/templates"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// generatedExtension is the extension of every file QuickWrap writes
const generatedExtension = ".cs"

// Cleaner handles cleaning up generated files
type Cleaner struct {
	diagnostics *utils.DiagnosticSystem
}

// NewCleaner creates a new cleaner
func NewCleaner(diagnostics *utils.DiagnosticSystem) *Cleaner {
	return &Cleaner{diagnostics: diagnostics}
}

// CleanGeneratedFiles removes generated files from the given directories,
// recursively. Only files whose header carries the generated-code marker
// are removed. Every directory is attempted even if an earlier one fails.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string
	var collector errors.Collector

	for _, dir := range directories {
		removed, err := utils.RemoveMarkedFiles(dir, generatedExtension, templates.GeneratedMarker)
		for _, file := range removed {
			c.diagnostics.Verbose("Removed %s", file)
		}
		removedFiles = append(removedFiles, removed...)
		collector.Add(err)
	}

	return removedFiles, collector.ErrorOrNil()
}
