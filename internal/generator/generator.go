// Package generator synthesizes the wrapper interface and its delegating
// implementation from a surface model.
package generator

import (
	"fmt"

	"github.com/JeremyTCD/QuickWrap/internal/docs"
	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/templates"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// Options controls a single generation
type Options struct {
	Namespace string        // namespace the wrapper is declared in
	Docs      Documentation // optional; nil disables doc comments
}

// Result holds the two rendered compilation units of one wrapped type
type Result struct {
	TypeName       string
	InterfaceName  string
	ClassName      string
	Interface      string
	Implementation string
	Warnings       []models.Warning
}

// Generator implements the CodeGenerator interface
type Generator struct {
	renderer *templates.Renderer
}

// NewGenerator creates a new generator bound to a rendering context
func NewGenerator(renderer *templates.Renderer) *Generator {
	return &Generator{renderer: renderer}
}

// Generate renders both the interface and the implementation. Invalid
// identifiers found in either are reported together.
func (g *Generator) Generate(model *models.SurfaceModel, opts Options) (*Result, error) {
	members, err := g.prepare(model, opts)
	if err != nil {
		return nil, err
	}

	iface, err := g.renderer.GenerateInterface(g.interfaceData(model, opts, members))
	if err != nil {
		return nil, err
	}
	impl, err := g.renderer.GenerateImplementation(g.classData(model, opts, members))
	if err != nil {
		return nil, err
	}

	naming := g.renderer.Naming()
	return &Result{
		TypeName:       model.Type.FullName(),
		InterfaceName:  naming.InterfaceName(model.Type),
		ClassName:      naming.ClassName(model.Type),
		Interface:      iface,
		Implementation: impl,
		Warnings:       append([]models.Warning(nil), model.Warnings...),
	}, nil
}

// GenerateInterface renders only the interface
func (g *Generator) GenerateInterface(model *models.SurfaceModel, opts Options) (string, error) {
	members, err := g.prepare(model, opts)
	if err != nil {
		return "", err
	}
	return g.renderer.GenerateInterface(g.interfaceData(model, opts, members))
}

// GenerateImplementation renders only the implementation
func (g *Generator) GenerateImplementation(model *models.SurfaceModel, opts Options) (string, error) {
	members, err := g.prepare(model, opts)
	if err != nil {
		return "", err
	}
	return g.renderer.GenerateImplementation(g.classData(model, opts, members))
}

// memberSet is the template data shared by both synthesizers
type memberSet struct {
	properties []templates.PropertyData
	methods    []templates.MethodData
	events     []templates.EventData
}

// prepare validates every derived name and converts the model's members
func (g *Generator) prepare(model *models.SurfaceModel, opts Options) (*memberSet, error) {
	if model == nil {
		return nil, fmt.Errorf("surface model cannot be nil")
	}

	var collector errors.Collector
	owner := model.Type.FullName()
	naming := g.renderer.Naming()

	if err := utils.IsNamespaceName("namespace")(opts.Namespace); err != nil {
		collector.Add(errors.NewInvalidIdentifierError(owner, opts.Namespace).
			WithCause(err).
			WithSuggestion("Pass a dotted output namespace such as Contoso.Services"))
	}
	collector.Add(templates.ValidateIdentifier(owner, naming.InterfaceName(model.Type)))
	collector.Add(templates.ValidateIdentifier(owner, naming.ClassName(model.Type)))
	if model.NeedsInstance() {
		collector.Add(templates.ValidateIdentifier(owner, templates.FieldName(model.Type)))
	}

	field := templates.FieldName(model.Type)
	typeName := g.renderer.TypeName(model.Type)
	target := func(static bool) string {
		if static {
			return typeName
		}
		return field
	}

	members := &memberSet{}

	for _, p := range model.Properties {
		label := model.Type.Name + "." + p.Name
		name, err := templates.EscapeIdentifier(label, p.Name)
		if err != nil {
			collector.Add(err)
			continue
		}
		members.properties = append(members.properties, templates.PropertyData{
			Doc:      summary(opts.Docs, docs.PropertyID(model.Type, p.Name)),
			Name:     name,
			Type:     g.renderer.TypeName(p.Type),
			Readable: p.Readable,
			Writable: p.Writable,
			Target:   target(p.Static),
		})
	}

	for _, m := range model.Methods {
		method, err := g.methodData(model.Type, m, opts)
		if err != nil {
			collector.Add(err)
			continue
		}
		method.Target = target(m.Static)
		members.methods = append(members.methods, method)
	}

	for _, e := range model.Events {
		label := model.Type.Name + "." + e.Name
		name, err := templates.EscapeIdentifier(label, e.Name)
		if err != nil {
			collector.Add(err)
			continue
		}
		params, err := g.parameters(label, e.Invoke)
		if err != nil {
			collector.Add(err)
			continue
		}
		members.events = append(members.events, templates.EventData{
			Doc:        summary(opts.Docs, docs.EventID(model.Type, e.Name)),
			Name:       name,
			Type:       g.renderer.TypeName(e.HandlerType),
			Parameters: params,
			Target:     target(e.Static),
		})
	}

	if err := collector.ErrorOrNil(); err != nil {
		return nil, err
	}
	return members, nil
}

func (g *Generator) methodData(declaring models.TypeRef, m models.MethodDescriptor, opts Options) (templates.MethodData, error) {
	label := declaring.Name + "." + m.Name
	var collector errors.Collector

	name, err := templates.EscapeIdentifier(label, m.Name)
	collector.Add(err)
	for _, tp := range m.TypeParameters {
		collector.Add(templates.ValidateIdentifier(label, tp))
	}
	params, err := g.parameters(label, m.Parameters)
	collector.Add(err)

	if err := collector.ErrorOrNil(); err != nil {
		return templates.MethodData{}, err
	}

	return templates.MethodData{
		Doc:            summary(opts.Docs, docs.MethodID(declaring, m)),
		Name:           name,
		ReturnType:     g.renderer.TypeName(m.ReturnType),
		TypeParameters: m.TypeParameters,
		Parameters:     params,
		Returns:        m.ReturnsValue(),
	}, nil
}

func (g *Generator) parameters(label string, params []models.ParameterDescriptor) ([]templates.ParameterData, error) {
	var collector errors.Collector
	result := make([]templates.ParameterData, 0, len(params))
	for _, p := range params {
		name, err := templates.EscapeIdentifier(label, p.Name)
		if err != nil {
			collector.Add(err)
			continue
		}
		result = append(result, templates.ParameterData{Name: name, Type: g.renderer.TypeName(p.Type)})
	}
	return result, collector.ErrorOrNil()
}

func (g *Generator) interfaceData(model *models.SurfaceModel, opts Options, members *memberSet) templates.InterfaceData {
	return templates.InterfaceData{
		Source:     model.Type.String(),
		Usings:     model.Namespaces,
		Namespace:  opts.Namespace,
		Name:       g.renderer.Naming().InterfaceName(model.Type),
		Properties: members.properties,
		Methods:    members.methods,
		Events:     members.events,
	}
}

func (g *Generator) classData(model *models.SurfaceModel, opts Options, members *memberSet) templates.ClassData {
	naming := g.renderer.Naming()

	// Doc comments belong on the interface only
	properties := make([]templates.PropertyData, len(members.properties))
	for i, p := range members.properties {
		p.Doc = nil
		properties[i] = p
	}
	methods := make([]templates.MethodData, len(members.methods))
	for i, m := range members.methods {
		m.Doc = nil
		methods[i] = m
	}
	events := make([]templates.EventData, len(members.events))
	for i, e := range members.events {
		e.Doc = nil
		events[i] = e
	}

	return templates.ClassData{
		Source:      model.Type.String(),
		Usings:      model.Namespaces,
		Namespace:   opts.Namespace,
		Name:        naming.ClassName(model.Type),
		Interface:   naming.InterfaceName(model.Type),
		WrappedType: g.renderer.TypeName(model.Type),
		Field:       templates.FieldName(model.Type),
		HasField:    model.NeedsInstance(),
		Properties:  properties,
		Methods:     methods,
		Events:      events,
	}
}

func summary(d Documentation, id string) []string {
	if d == nil {
		return nil
	}
	return d.Summary(id)
}
