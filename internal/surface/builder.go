// Package surface turns a raw type dump into an immutable SurfaceModel.
package surface

import (
	"fmt"
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/extractor"
	"github.com/JeremyTCD/QuickWrap/internal/manifest"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/typename"
)

// Builder builds surface models from manifest types
type Builder struct {
	types     *typename.Parser
	extractor *extractor.Extractor
}

// NewBuilder creates a new surface model builder
func NewBuilder() *Builder {
	types := typename.NewParser()
	return &Builder{
		types:     types,
		extractor: extractor.NewExtractor(types),
	}
}

// Build resolves typeName in m and returns its surface model. Any type that
// cannot be resolved aborts the build.
func (b *Builder) Build(m *manifest.Manifest, typeName string) (*models.SurfaceModel, error) {
	descriptor, ok := m.FindType(typeName)
	if !ok {
		return nil, errors.NewUnresolvableTypeError(typeName, fmt.Errorf("type not found in manifest")).
			WithContext("available_types", m.TypeNames())
	}

	typeRef, err := b.types.Parse(descriptor.Name)
	if err != nil {
		return nil, err
	}

	members := b.extractor.Extract(descriptor)
	model := &models.SurfaceModel{
		Type:                  typeRef,
		HasDefaultConstructor: descriptor.HasDefaultConstructor(),
		Warnings:              append([]models.Warning(nil), members.Warnings...),
	}

	for _, raw := range members.Methods {
		method, warnings, err := b.buildMethod(typeRef, raw)
		if err != nil {
			return nil, err
		}
		model.Methods = append(model.Methods, method)
		model.Warnings = append(model.Warnings, warnings...)
	}

	for _, raw := range members.Properties {
		property, ok, err := b.buildProperty(typeRef, raw)
		if err != nil {
			return nil, err
		}
		if ok {
			model.Properties = append(model.Properties, property)
		}
	}

	for _, raw := range members.Events {
		event, err := b.buildEvent(m, typeRef, raw)
		if err != nil {
			return nil, err
		}
		model.Events = append(model.Events, event)
	}

	if model.NeedsInstance() && !model.HasDefaultConstructor {
		model.Warnings = append(model.Warnings, models.Warning{
			Member: typeRef.FullName(),
			Kind:   models.WarningNoDefaultConstructor,
			Reason: "no public parameterless constructor; the generated constructor still calls new " + typeRef.Name + "()",
		})
	}

	model.Namespaces = CollectNamespaces(model)
	return model, nil
}

func (b *Builder) buildMethod(declaring models.TypeRef, raw manifest.MethodDescriptor) (models.MethodDescriptor, []models.Warning, error) {
	generics := raw.GenericParameterNames()
	var warnings []models.Warning

	returnType, err := b.types.Parse(raw.ReturnType, generics...)
	if err != nil {
		return models.MethodDescriptor{}, nil, wrapMember(raw.Signature(), err)
	}

	method := models.MethodDescriptor{
		Name:           raw.Name,
		DeclaringType:  declaring,
		Static:         raw.Static,
		ReturnType:     returnType,
		TypeParameters: generics,
	}

	for i, p := range raw.Parameters {
		paramType, err := b.types.Parse(p.Type, generics...)
		if err != nil {
			return models.MethodDescriptor{}, nil, wrapMember(raw.Signature(), err)
		}
		name := parameterName(p.Name, i)
		method.Parameters = append(method.Parameters, models.ParameterDescriptor{Name: name, Type: paramType})

		if p.HasDefaultValue {
			warnings = append(warnings, models.Warning{
				Member: raw.Signature(),
				Kind:   models.WarningDefaultValueDropped,
				Reason: fmt.Sprintf("default value of parameter '%s' is not preserved", name),
			})
		}
	}

	for _, gp := range raw.GenericParameters {
		if len(gp.Constraints) > 0 {
			warnings = append(warnings, models.Warning{
				Member: raw.Signature(),
				Kind:   models.WarningConstraintsDropped,
				Reason: fmt.Sprintf("constraints on '%s' (%s) are not reproduced", gp.Name, strings.Join(gp.Constraints, ", ")),
			})
		}
	}

	return method, warnings, nil
}

func (b *Builder) buildProperty(declaring models.TypeRef, raw manifest.PropertyDescriptor) (models.PropertyDescriptor, bool, error) {
	readable := raw.Getter == manifest.AccessPublic
	writable := raw.Setter == manifest.AccessPublic
	if !readable && !writable {
		return models.PropertyDescriptor{}, false, nil
	}

	valueType, err := b.types.Parse(raw.Type)
	if err != nil {
		return models.PropertyDescriptor{}, false, wrapMember(raw.Name, err)
	}

	return models.PropertyDescriptor{
		Name:          raw.Name,
		DeclaringType: declaring,
		Type:          valueType,
		Readable:      readable,
		Writable:      writable,
		Static:        raw.Static,
	}, true, nil
}

func (b *Builder) buildEvent(m *manifest.Manifest, declaring models.TypeRef, raw manifest.EventDescriptor) (models.EventDescriptor, error) {
	handlerType, err := b.types.Parse(raw.HandlerType)
	if err != nil {
		return models.EventDescriptor{}, wrapMember(raw.Name, err)
	}

	key := delegateKey(raw.HandlerType)
	delegate, ok := m.FindDelegate(key)
	if !ok {
		return models.EventDescriptor{}, errors.NewUnresolvableTypeError(key,
			fmt.Errorf("event '%s': delegate definition not found", raw.Name)).
			WithSuggestion("Add the delegate's invocation signature to the manifest's delegates section")
	}
	if len(delegate.GenericParameters) != len(handlerType.Args) {
		return models.EventDescriptor{}, errors.NewUnresolvableTypeError(raw.HandlerType,
			fmt.Errorf("event '%s': delegate expects %d generic arguments, got %d",
				raw.Name, len(delegate.GenericParameters), len(handlerType.Args)))
	}

	bindings := make(map[string]models.TypeRef, len(delegate.GenericParameters))
	for i, name := range delegate.GenericParameters {
		bindings[name] = handlerType.Args[i]
	}

	event := models.EventDescriptor{
		Name:          raw.Name,
		DeclaringType: declaring,
		HandlerType:   handlerType,
		Static:        raw.Static,
	}
	for i, p := range delegate.Parameters {
		paramType, err := b.types.Parse(p.Type, delegate.GenericParameters...)
		if err != nil {
			return models.EventDescriptor{}, wrapMember(raw.Name, err)
		}
		event.Invoke = append(event.Invoke, models.ParameterDescriptor{
			Name: parameterName(p.Name, i),
			Type: substitute(paramType, bindings),
		})
	}

	return event, nil
}

// substitute replaces bound generic parameters, recursing into arguments
func substitute(ref models.TypeRef, bindings map[string]models.TypeRef) models.TypeRef {
	if ref.IsGenericParameter {
		if bound, ok := bindings[ref.Name]; ok {
			if ref.ArrayRank > 0 {
				bound.ArrayRank = ref.ArrayRank
			}
			return bound
		}
		return ref
	}
	if len(ref.Args) > 0 {
		args := make([]models.TypeRef, len(ref.Args))
		for i, arg := range ref.Args {
			args[i] = substitute(arg, bindings)
		}
		ref.Args = args
	}
	return ref
}

// delegateKey strips generic arguments, keeping the arity marker
func delegateKey(handlerType string) string {
	if i := strings.Index(handlerType, "["); i >= 0 {
		return strings.TrimSpace(handlerType[:i])
	}
	return strings.TrimSpace(handlerType)
}

// parameterName fills in names reflection did not report
func parameterName(name string, position int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", position)
	}
	return name
}

func wrapMember(member string, err error) error {
	if base, ok := err.(*errors.BaseError); ok {
		return base.WithContext("member", member)
	}
	return err
}
