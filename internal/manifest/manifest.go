// Package manifest defines the surface manifest: a reflection dump of one
// or more types, produced ahead of time by a platform-specific extractor.
package manifest

import (
	"fmt"
	"strings"
)

// Access levels as reported by reflection
const (
	AccessPublic    = "public"
	AccessProtected = "protected"
	AccessInternal  = "internal"
	AccessPrivate   = "private"
)

// Manifest is the root document
type Manifest struct {
	SchemaVersion string               `yaml:"schemaVersion" json:"schemaVersion"`
	Assembly      string               `yaml:"assembly,omitempty" json:"assembly,omitempty"`
	Types         []TypeDescriptor     `yaml:"types" json:"types"`
	Delegates     []DelegateDescriptor `yaml:"delegates,omitempty" json:"delegates,omitempty"`
}

// TypeDescriptor is the raw member dump of a single type. Members are listed
// as reflection reports them, including non-public, inherited and
// compiler-special ones.
type TypeDescriptor struct {
	Name         string                  `yaml:"name" json:"name"` // reflection full name
	Static       bool                    `yaml:"static,omitempty" json:"static,omitempty"`
	Abstract     bool                    `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Constructors []ConstructorDescriptor `yaml:"constructors,omitempty" json:"constructors,omitempty"`
	Methods      []MethodDescriptor      `yaml:"methods,omitempty" json:"methods,omitempty"`
	Properties   []PropertyDescriptor    `yaml:"properties,omitempty" json:"properties,omitempty"`
	Events       []EventDescriptor       `yaml:"events,omitempty" json:"events,omitempty"`
}

// ConstructorDescriptor is a raw constructor
type ConstructorDescriptor struct {
	Access     string                `yaml:"access" json:"access"`
	Parameters []ParameterDescriptor `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// MethodDescriptor is a raw method
type MethodDescriptor struct {
	Name              string                       `yaml:"name" json:"name"`
	Access            string                       `yaml:"access" json:"access"`
	Static            bool                         `yaml:"static,omitempty" json:"static,omitempty"`
	SpecialName       bool                         `yaml:"specialName,omitempty" json:"specialName,omitempty"`
	DeclaringType     string                       `yaml:"declaringType,omitempty" json:"declaringType,omitempty"`
	ReturnType        string                       `yaml:"returnType" json:"returnType"`
	Parameters        []ParameterDescriptor        `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	GenericParameters []GenericParameterDescriptor `yaml:"genericParameters,omitempty" json:"genericParameters,omitempty"`
}

// GenericParameterNames returns the method-level generic parameter names in order
func (m MethodDescriptor) GenericParameterNames() []string {
	names := make([]string, 0, len(m.GenericParameters))
	for _, gp := range m.GenericParameters {
		names = append(names, gp.Name)
	}
	return names
}

// Signature returns a short human-readable signature for diagnostics
func (m MethodDescriptor) Signature() string {
	types := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		types = append(types, p.Type)
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(types, ", "))
}

// ParameterDescriptor is a raw parameter
type ParameterDescriptor struct {
	Name            string `yaml:"name" json:"name"`
	Type            string `yaml:"type" json:"type"`
	HasDefaultValue bool   `yaml:"hasDefaultValue,omitempty" json:"hasDefaultValue,omitempty"`
}

// GenericParameterDescriptor is a raw generic parameter
type GenericParameterDescriptor struct {
	Name        string   `yaml:"name" json:"name"`
	Constraints []string `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// PropertyDescriptor is a raw property. Getter and Setter hold the accessor
// access level, or "" when the accessor does not exist.
type PropertyDescriptor struct {
	Name            string                `yaml:"name" json:"name"`
	Type            string                `yaml:"type" json:"type"`
	DeclaringType   string                `yaml:"declaringType,omitempty" json:"declaringType,omitempty"`
	Getter          string                `yaml:"getter,omitempty" json:"getter,omitempty"`
	Setter          string                `yaml:"setter,omitempty" json:"setter,omitempty"`
	Static          bool                  `yaml:"static,omitempty" json:"static,omitempty"`
	SpecialName     bool                  `yaml:"specialName,omitempty" json:"specialName,omitempty"`
	IndexParameters []ParameterDescriptor `yaml:"indexParameters,omitempty" json:"indexParameters,omitempty"`
}

// IsPublic reports whether the property has at least one public accessor
func (p PropertyDescriptor) IsPublic() bool {
	return p.Getter == AccessPublic || p.Setter == AccessPublic
}

// EventDescriptor is a raw event; Access is that of its add accessor
type EventDescriptor struct {
	Name          string `yaml:"name" json:"name"`
	HandlerType   string `yaml:"handlerType" json:"handlerType"`
	Access        string `yaml:"access" json:"access"`
	DeclaringType string `yaml:"declaringType,omitempty" json:"declaringType,omitempty"`
	Static        bool   `yaml:"static,omitempty" json:"static,omitempty"`
	SpecialName   bool   `yaml:"specialName,omitempty" json:"specialName,omitempty"`
}

// DelegateDescriptor is the invocation signature of a delegate type
type DelegateDescriptor struct {
	Name              string                `yaml:"name" json:"name"` // full name, arity marker included
	GenericParameters []string              `yaml:"genericParameters,omitempty" json:"genericParameters,omitempty"`
	Parameters        []ParameterDescriptor `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// HasDefaultConstructor reports whether a public parameterless constructor
// exists. Static and abstract types never have one; otherwise a type without
// any listed constructor is assumed constructible.
func (t *TypeDescriptor) HasDefaultConstructor() bool {
	if t.Static || t.Abstract {
		return false
	}
	if len(t.Constructors) == 0 {
		return true
	}
	for _, c := range t.Constructors {
		if c.Access == AccessPublic && len(c.Parameters) == 0 {
			return true
		}
	}
	return false
}

// FindType looks a type up by reflection full name. A simple name is
// accepted when it matches exactly one type.
func (m *Manifest) FindType(name string) (*TypeDescriptor, bool) {
	for i := range m.Types {
		if m.Types[i].Name == name {
			return &m.Types[i], true
		}
	}

	var match *TypeDescriptor
	for i := range m.Types {
		if simpleName(m.Types[i].Name) == name {
			if match != nil {
				return nil, false
			}
			match = &m.Types[i]
		}
	}
	return match, match != nil
}

// FindDelegate looks a delegate definition up by full name without generic
// arguments, e.g. System.EventHandler`1
func (m *Manifest) FindDelegate(name string) (*DelegateDescriptor, bool) {
	for i := range m.Delegates {
		if m.Delegates[i].Name == name {
			return &m.Delegates[i], true
		}
	}
	if d, ok := builtinDelegates[name]; ok {
		return &d, true
	}
	return nil, false
}

// TypeNames returns the full names of all types in the manifest
func (m *Manifest) TypeNames() []string {
	names := make([]string, 0, len(m.Types))
	for _, t := range m.Types {
		names = append(names, t.Name)
	}
	return names
}

// simpleName strips namespace and generic arguments from a full name
func simpleName(fullName string) string {
	name := fullName
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "`"); i >= 0 {
		name = name[:i]
	}
	return name
}

// builtinDelegates covers the framework delegates events most commonly use,
// so manifests do not have to repeat them
var builtinDelegates = map[string]DelegateDescriptor{
	"System.EventHandler": {
		Name: "System.EventHandler",
		Parameters: []ParameterDescriptor{
			{Name: "sender", Type: "System.Object"},
			{Name: "e", Type: "System.EventArgs"},
		},
	},
	"System.EventHandler`1": {
		Name:              "System.EventHandler`1",
		GenericParameters: []string{"TEventArgs"},
		Parameters: []ParameterDescriptor{
			{Name: "sender", Type: "System.Object"},
			{Name: "e", Type: "TEventArgs"},
		},
	},
	"System.Action": {
		Name: "System.Action",
	},
	"System.Action`1": {
		Name:              "System.Action`1",
		GenericParameters: []string{"T"},
		Parameters:        []ParameterDescriptor{{Name: "obj", Type: "T"}},
	},
	"System.Action`2": {
		Name:              "System.Action`2",
		GenericParameters: []string{"T1", "T2"},
		Parameters: []ParameterDescriptor{
			{Name: "arg1", Type: "T1"},
			{Name: "arg2", Type: "T2"},
		},
	},
	"System.Action`3": {
		Name:              "System.Action`3",
		GenericParameters: []string{"T1", "T2", "T3"},
		Parameters: []ParameterDescriptor{
			{Name: "arg1", Type: "T1"},
			{Name: "arg2", Type: "T2"},
			{Name: "arg3", Type: "T3"},
		},
	},
	"System.Action`4": {
		Name:              "System.Action`4",
		GenericParameters: []string{"T1", "T2", "T3", "T4"},
		Parameters: []ParameterDescriptor{
			{Name: "arg1", Type: "T1"},
			{Name: "arg2", Type: "T2"},
			{Name: "arg3", Type: "T3"},
			{Name: "arg4", Type: "T4"},
		},
	},
}
