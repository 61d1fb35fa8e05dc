// Package extractor filters a raw type dump down to the members that make up
// the type's public surface.
package extractor

import (
	"fmt"
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/manifest"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/typename"
)

// Members is the filtered member set of a type
type Members struct {
	Methods    []manifest.MethodDescriptor
	Properties []manifest.PropertyDescriptor
	Events     []manifest.EventDescriptor
	Warnings   []models.Warning
}

// Extractor selects the declared-only public members of a type
type Extractor struct {
	types *typename.Parser
}

// NewExtractor creates a new member extractor
func NewExtractor(types *typename.Parser) *Extractor {
	return &Extractor{types: types}
}

// Extract returns the public, declared-only methods, properties and events of
// t. Compiler-special members, explicit interface implementations, indexers
// and members with by-ref or pointer types are left out; the latter two are
// reported as warnings because callers may expect them.
func (e *Extractor) Extract(t *manifest.TypeDescriptor) Members {
	var result Members

	for _, m := range t.Methods {
		if !isSurfaced(t, m.Access, m.DeclaringType, m.Name, m.SpecialName) {
			continue
		}
		if reason := e.unsupportedMethod(m); reason != "" {
			result.Warnings = append(result.Warnings, models.Warning{
				Member: m.Signature(),
				Kind:   models.WarningUnsupportedMember,
				Reason: reason,
			})
			continue
		}
		result.Methods = append(result.Methods, m)
	}

	for _, p := range t.Properties {
		access := manifest.AccessPrivate
		if p.IsPublic() {
			access = manifest.AccessPublic
		}
		if !isSurfaced(t, access, p.DeclaringType, p.Name, p.SpecialName) {
			continue
		}
		if len(p.IndexParameters) > 0 {
			result.Warnings = append(result.Warnings, models.Warning{
				Member: p.Name,
				Kind:   models.WarningUnsupportedMember,
				Reason: "indexers are not supported",
			})
			continue
		}
		if reason := e.types.Unsupported(p.Type); reason != "" {
			result.Warnings = append(result.Warnings, models.Warning{
				Member: p.Name,
				Kind:   models.WarningUnsupportedMember,
				Reason: reason,
			})
			continue
		}
		result.Properties = append(result.Properties, p)
	}

	for _, ev := range t.Events {
		if !isSurfaced(t, ev.Access, ev.DeclaringType, ev.Name, ev.SpecialName) {
			continue
		}
		result.Events = append(result.Events, ev)
	}

	return result
}

func (e *Extractor) unsupportedMethod(m manifest.MethodDescriptor) string {
	if reason := e.types.Unsupported(m.ReturnType); reason != "" {
		return "return type: " + reason
	}
	for _, p := range m.Parameters {
		if reason := e.types.Unsupported(p.Type); reason != "" {
			return fmt.Sprintf("parameter '%s': %s", p.Name, reason)
		}
	}
	return ""
}

// isSurfaced applies the public, declared-only, not-special filter
func isSurfaced(t *manifest.TypeDescriptor, access, declaringType, name string, specialName bool) bool {
	if access != manifest.AccessPublic || specialName {
		return false
	}
	if declaringType != "" && declaringType != t.Name {
		return false
	}
	// Explicit interface implementations are named Interface.Member
	return !strings.Contains(name, ".")
}
