package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// SupportedMajor is the manifest schema major version this generator reads
const SupportedMajor = "v1"

// Load reads a manifest from a YAML or JSON file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapManifestError(path, err)
	}
	m, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapManifestError(path, err)
	}
	return m, nil
}

// Decode reads a manifest from r. JSON input is accepted as YAML.
func Decode(r io.Reader) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the schema version and that every type has a name
func (m *Manifest) Validate() error {
	if !semver.IsValid(m.SchemaVersion) {
		return errors.Newf(errors.ManifestErrorCode, "schemaVersion '%s' is not a semantic version", m.SchemaVersion).
			WithSuggestion("Set schemaVersion to a value like v1.0.0")
	}
	if major := semver.Major(m.SchemaVersion); major != SupportedMajor {
		return errors.Newf(errors.ManifestErrorCode, "unsupported manifest schema %s (supported: %s.x)", m.SchemaVersion, SupportedMajor).
			WithContext("schema_version", m.SchemaVersion)
	}
	for i, t := range m.Types {
		if t.Name == "" {
			return errors.Newf(errors.ManifestErrorCode, "type #%d has no name", i+1)
		}
	}
	for i, d := range m.Delegates {
		if d.Name == "" {
			return errors.Newf(errors.ManifestErrorCode, "delegate #%d has no name", i+1)
		}
	}
	return nil
}
