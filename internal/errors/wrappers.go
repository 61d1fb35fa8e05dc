package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// NewUnresolvableTypeError reports a type name that could not be parsed or found
func NewUnresolvableTypeError(typeName string, cause error) *BaseError {
	return Wrap(UnresolvableTypeErrorCode, fmt.Sprintf("cannot resolve type '%s'", typeName), cause).
		WithContext("type", typeName).
		WithSuggestions(
			"Check that the type is present in the surface manifest",
			"Use reflection full names, e.g. System.Collections.Generic.List`1[System.String]",
		)
}

// NewInvalidIdentifierError reports a derived name that is not a legal identifier
func NewInvalidIdentifierError(member, identifier string) *BaseError {
	return Newf(InvalidIdentifierErrorCode, "%s: '%s' is not a valid identifier", member, identifier).
		WithContext("member", member).
		WithContext("identifier", identifier)
}

// NewUnsupportedMemberError describes a member the surface model cannot represent
func NewUnsupportedMemberError(member, reason string) *BaseError {
	return Newf(UnsupportedMemberErrorCode, "%s: %s", member, reason).
		WithContext("member", member)
}

// WrapManifestError wraps manifest loading and decoding errors
func WrapManifestError(path string, cause error) *BaseError {
	return Wrap(ManifestErrorCode, fmt.Sprintf("failed to load manifest '%s'", path), cause).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(path, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, path)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("path", path).
		WithContext("operation", operation)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// Collector accumulates per-member failures so a run reports all of them at once
type Collector struct {
	result *multierror.Error
}

// Add records err if it is non-nil
func (c *Collector) Add(err error) {
	if err != nil {
		c.result = multierror.Append(c.result, err)
	}
}

// Len returns the number of recorded errors
func (c *Collector) Len() int {
	if c.result == nil {
		return 0
	}
	return c.result.Len()
}

// ErrorOrNil returns the aggregated error, or nil when nothing was recorded
func (c *Collector) ErrorOrNil() error {
	return c.result.ErrorOrNil()
}
