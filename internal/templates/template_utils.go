package templates

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// Naming holds the affixes used to derive wrapper names
type Naming struct {
	InterfacePrefix string
	ServiceSuffix   string
}

// DefaultNaming returns the I<Type>Service convention
func DefaultNaming() Naming {
	return Naming{InterfacePrefix: "I", ServiceSuffix: "Service"}
}

// InterfaceName derives the interface name for the wrapped type
func (n Naming) InterfaceName(t models.TypeRef) string {
	return n.InterfacePrefix + SimpleName(t) + n.ServiceSuffix
}

// ClassName derives the implementation class name for the wrapped type
func (n Naming) ClassName(t models.TypeRef) string {
	return SimpleName(t) + n.ServiceSuffix
}

// FieldName derives the name of the field holding the wrapped instance:
// an underscore followed by the simple name with its first character
// lower-cased.
func FieldName(t models.TypeRef) string {
	name := SimpleName(t)
	if name == "" {
		return "_"
	}
	first, size := utf8.DecodeRuneInString(name)
	return "_" + string(unicode.ToLower(first)) + name[size:]
}

// SimpleName returns the innermost name of a possibly nested type
func SimpleName(t models.TypeRef) string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// ValidateIdentifier checks that name is a legal C# identifier
func ValidateIdentifier(member, name string) error {
	if err := utils.IsCSharpIdentifier(member)(name); err != nil {
		return errors.NewInvalidIdentifierError(member, name).WithCause(err)
	}
	if IsKeyword(name) {
		return errors.NewInvalidIdentifierError(member, name).
			WithSuggestion("Reserved words cannot be used as type or field names")
	}
	return nil
}

// EscapeIdentifier validates name and prefixes reserved words with @ so
// they can be used as member and parameter names
func EscapeIdentifier(member, name string) (string, error) {
	if err := utils.IsCSharpIdentifier(member)(name); err != nil {
		return "", errors.NewInvalidIdentifierError(member, name).WithCause(err)
	}
	if IsKeyword(name) {
		return "@" + name, nil
	}
	return name, nil
}
