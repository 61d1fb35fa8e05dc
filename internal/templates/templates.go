// Package templates renders C# compilation units from template data. A
// Renderer is created per generation run and carries the keyword table,
// naming rules and template registry for that run.
package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
)

// GeneratedMarker identifies files written by the generator
const GeneratedMarker = "This code was generated by QuickWrap"

// ParameterData represents a parameter for member generation
type ParameterData struct {
	Name string
	Type string
}

// PropertyData represents a property for interface and class generation
type PropertyData struct {
	Doc      []string
	Name     string
	Type     string
	Readable bool
	Writable bool
	Target   string // field name, or the wrapped type name for static properties
}

// MethodData represents a method for interface and class generation
type MethodData struct {
	Doc            []string
	Name           string
	ReturnType     string
	TypeParameters []string
	Parameters     []ParameterData
	Returns        bool
	Target         string
}

// EventData represents an event for interface and class generation
type EventData struct {
	Doc        []string
	Name       string
	Type       string
	Parameters []ParameterData // invocation signature of the handler
	Target     string
}

// InterfaceData represents the data needed to render an interface
type InterfaceData struct {
	Source     string // full name of the wrapped type
	Usings     []string
	Namespace  string
	Name       string
	Properties []PropertyData
	Methods    []MethodData
	Events     []EventData
}

// ClassData represents the data needed to render a delegating class
type ClassData struct {
	Source      string
	Usings      []string
	Namespace   string
	Name        string
	Interface   string
	WrappedType string
	Field       string
	HasField    bool
	Properties  []PropertyData
	Methods     []MethodData
	Events      []EventData
}

// GenerateInterface renders an interface compilation unit
func (r *Renderer) GenerateInterface(data InterfaceData) (string, error) {
	return r.Execute(InterfaceTemplateName, data)
}

// GenerateImplementation renders a delegating class compilation unit
func (r *Renderer) GenerateImplementation(data ClassData) (string, error) {
	return r.Execute(ImplementationTemplateName, data)
}

// Execute runs a registered template against data
func (r *Renderer) Execute(name string, data interface{}) (string, error) {
	templateStr, ok := r.registry.Get(name)
	if !ok {
		return "", errors.WrapTemplateError(name, "lookup", fmt.Errorf("template not registered"))
	}
	return executeTemplate(name, templateStr, data)
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	// separator yields a blank line before every block except the first
	first := true
	funcMap := template.FuncMap{
		"header":     generatedHeader,
		"doc":        docComment,
		"params":     joinParameters,
		"args":       joinArguments,
		"typeParams": typeParameterList,
		"separator": func() string {
			if first {
				first = false
				return ""
			}
			return "\n"
		},
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}

func generatedHeader(source string) string {
	return "// <auto-generated>\n" +
		"//     " + GeneratedMarker + " from " + source + ".\n" +
		"//     Changes to this file will be lost when the code is regenerated.\n" +
		"// </auto-generated>"
}

// docComment renders summary lines as an indented XML doc comment
func docComment(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	const indent = "        "
	var b strings.Builder
	b.WriteString(indent + "/// <summary>\n")
	for _, line := range lines {
		b.WriteString(indent + "/// " + line + "\n")
	}
	b.WriteString(indent + "/// </summary>\n")
	return b.String()
}

func joinParameters(params []ParameterData) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func joinArguments(params []ParameterData) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return strings.Join(parts, ", ")
}

func typeParameterList(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "<" + strings.Join(names, ", ") + ">"
}
