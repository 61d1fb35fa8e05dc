package cli

import (
	"github.com/JeremyTCD/QuickWrap/internal/config"
	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// Config holds the configuration for a single CLI run. Non-empty fields
// override the values loaded from the project configuration file.
type Config struct {
	// ConfigPath is the project configuration file. If empty, quickwrap.toml
	// in the working directory is used when present.
	ConfigPath string

	// Manifest is the surface manifest to read
	Manifest string

	// Types lists the types to wrap
	Types []string

	// Namespace is the namespace generated code is declared in
	Namespace string

	// OutputDir receives the generated files
	OutputDir string

	// Docs is an optional XML documentation file
	Docs string

	// Strict turns unsupported-member warnings into errors
	Strict bool

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// Resolve loads the project configuration and applies c on top of it
func (c Config) Resolve() (*config.Config, error) {
	project, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}

	if c.Manifest != "" {
		project.Manifest = c.Manifest
	}
	if len(c.Types) > 0 {
		project.Types = c.Types
	}
	if c.Namespace != "" {
		project.OutputNamespace = c.Namespace
	}
	if c.OutputDir != "" {
		project.OutputDir = c.OutputDir
	}
	if c.Docs != "" {
		project.Docs = c.Docs
	}
	if c.Strict {
		project.Strict = true
	}

	if err := project.Validate(); err != nil {
		return nil, errors.WrapConfigurationError(c.ConfigPath, "validate", err)
	}
	if project.Manifest == "" {
		return nil, errors.New(errors.ConfigurationErrorCode, "no surface manifest given").
			WithSuggestions(
				"Pass --manifest path/to/surface.yaml",
				"Or set manifest in "+config.DefaultFileName,
			)
	}
	return project, nil
}
