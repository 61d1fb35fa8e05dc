// Package config loads quickwrap.toml project configuration
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/templates"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// DefaultFileName is looked up in the working directory when no path is given
const DefaultFileName = "quickwrap.toml"

// Config holds project-level generation settings
type Config struct {
	// Manifest is the surface manifest to read
	Manifest string `toml:"manifest"`

	// Types lists the types to wrap; empty means every type in the manifest
	Types []string `toml:"types"`

	// OutputNamespace is the namespace generated code is declared in. When
	// empty, NamespacePrefix is prepended to the wrapped type's namespace.
	OutputNamespace string `toml:"output_namespace"`
	NamespacePrefix string `toml:"namespace_prefix"`

	// OutputDir receives the generated files
	OutputDir string `toml:"output_dir"`

	// Docs is an optional XML documentation file
	Docs string `toml:"docs"`

	InterfacePrefix string `toml:"interface_prefix"`
	ServiceSuffix   string `toml:"service_suffix"`

	// Strict fails the run when a member cannot be wrapped instead of
	// skipping it with a warning
	Strict bool `toml:"strict"`

	// Keywords overrides the reflected-name to keyword table. An empty
	// value removes a built-in entry.
	Keywords map[string]string `toml:"keywords"`
}

// Default returns the built-in configuration
func Default() *Config {
	naming := templates.DefaultNaming()
	return &Config{
		OutputDir:       "generated",
		InterfacePrefix: naming.InterfacePrefix,
		ServiceSuffix:   naming.ServiceSuffix,
		Keywords:        map[string]string{},
	}
}

// Load reads the configuration at path on top of the defaults. An empty
// path loads DefaultFileName if it exists and the defaults otherwise.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	cfg, err := Decode(string(data))
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "decode", err)
	}
	return cfg, nil
}

// Decode parses TOML configuration on top of the defaults
func Decode(data string) (*Config, error) {
	cfg := Default()
	meta, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that can be checked without a surface model
func (c *Config) Validate() error {
	if c.OutputNamespace != "" {
		if err := utils.IsNamespaceName("output_namespace")(c.OutputNamespace); err != nil {
			return err
		}
	}
	if c.NamespacePrefix != "" {
		if err := utils.IsNamespaceName("namespace_prefix")(c.NamespacePrefix); err != nil {
			return err
		}
	}
	if err := utils.ValidateEach("types", utils.NotEmpty("type"))(c.Types); err != nil {
		return err
	}
	for name := range c.Keywords {
		if name == "" {
			return utils.ValidationError{Field: "keywords", Message: "type names cannot be empty"}
		}
	}
	return nil
}

// NamespaceFor returns the output namespace for a wrapped type
func (c *Config) NamespaceFor(t models.TypeRef) string {
	if c.OutputNamespace != "" {
		return c.OutputNamespace
	}
	switch {
	case c.NamespacePrefix == "":
		return t.Namespace
	case t.Namespace == "":
		return c.NamespacePrefix
	default:
		return c.NamespacePrefix + "." + t.Namespace
	}
}

// Naming returns the wrapper naming rules
func (c *Config) Naming() templates.Naming {
	return templates.Naming{InterfacePrefix: c.InterfacePrefix, ServiceSuffix: c.ServiceSuffix}
}

// NewRenderer creates a rendering context configured from c
func (c *Config) NewRenderer() *templates.Renderer {
	return templates.NewRenderer(
		templates.WithKeywords(c.Keywords),
		templates.WithNaming(c.Naming()),
	)
}
