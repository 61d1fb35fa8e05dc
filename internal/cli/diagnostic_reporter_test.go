package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporterTo(false, &buf)

	reporter.ReportWarning("This is a test warning")

	assert.Contains(t, buf.String(), "! This is a test warning\n")
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "unresolvable type",
			err: errors.NewUnresolvableTypeError("Contoso.Missing", fmt.Errorf("type not found in manifest")).
				WithContext("available_types", []string{"Contoso.Client", "Contoso.Parser"}),
			contains: []string{
				"Type: Unresolvable Type Error\n-----------------------------\n",
				"Message: cannot resolve type 'Contoso.Missing'\n",
				"Context:\n   Available Types: Contoso.Client, Contoso.Parser\n   Type: Contoso.Missing\n",
				"Suggestions:\n   1. Check that the type is present in the surface manifest\n",
				"Type Name Format:",
				"For more help:",
			},
			excludes: []string{"Underlying cause", "Verbose Debug Information"},
		},
		{
			name: "aggregated identifiers",
			err: func() error {
				var collector errors.Collector
				collector.Add(errors.NewInvalidIdentifierError("method Send", "1Send"))
				collector.Add(errors.NewInvalidIdentifierError("property Value", "Va-lue"))
				return errors.Wrapf(errors.InvalidIdentifierErrorCode, collector.ErrorOrNil(), "failed to generate wrapper for '%s'", "Contoso.Client")
			}(),
			contains: []string{
				"Type: Invalid Identifier Error\n",
				"Message: failed to generate wrapper for 'Contoso.Client'\n",
				"Problems (2):\n   - method Send: '1Send' is not a valid identifier\n   - property Value: 'Va-lue' is not a valid identifier\n",
				"Identifier Rules:",
			},
		},
		{
			name:    "verbose chain",
			verbose: true,
			err:     errors.WrapFileSystemError("write", "out/IClientService.cs", fmt.Errorf("permission denied")),
			contains: []string{
				"Type: File System Error\n",
				"Underlying cause: permission denied\n",
				"Error Chain:\n    1. failed to write file 'out/IClientService.cs': permission denied\n    2. permission denied\n",
			},
		},
		{
			name:     "plain error",
			err:      fmt.Errorf("something broke"),
			contains: []string{"Message: something broke\n", "For more help:"},
			excludes: []string{"Type:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewDiagnosticReporterTo(tt.verbose, &buf).ReportError(tt.err)

			output := buf.String()
			assert.Contains(t, output, "ERROR: Code Generation Failed")
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, output, unwanted)
			}
		})
	}
}

func TestDiagnosticReporter_Debug(t *testing.T) {
	var quiet, verbose bytes.Buffer

	NewDiagnosticReporterTo(false, &quiet).Debug("value %d", 1)
	NewDiagnosticReporterTo(true, &verbose).Debug("value %d", 1)

	assert.Empty(t, quiet.String())
	assert.Equal(t, "[DEBUG] value 1\n", verbose.String())
}

func TestFormatContextKey(t *testing.T) {
	assert.Equal(t, "Available Types", formatContextKey("available_types"))
	assert.Equal(t, "Path", formatContextKey("path"))
}
