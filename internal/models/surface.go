package models

// ParameterDescriptor is a single positional parameter
type ParameterDescriptor struct {
	Name string  // parameter identifier
	Type TypeRef // parameter type
}

// MethodDescriptor describes a public method declared on the wrapped type
type MethodDescriptor struct {
	Name           string                // method name
	DeclaringType  TypeRef               // type that declares the method
	Static         bool                  // whether the method is static
	ReturnType     TypeRef               // Void() when no value is returned
	Parameters     []ParameterDescriptor // parameters in declaration order
	TypeParameters []string              // method-level generic parameter names
}

// ReturnsValue reports whether the method produces a value
func (m MethodDescriptor) ReturnsValue() bool {
	return !m.ReturnType.IsVoid()
}

// PropertyDescriptor describes a public property declared on the wrapped type
type PropertyDescriptor struct {
	Name          string  // property name
	DeclaringType TypeRef // type that declares the property
	Type          TypeRef // property value type
	Readable      bool    // has a public getter
	Writable      bool    // has a public setter
	Static        bool    // whether the accessors are static
}

// EventDescriptor describes a public event declared on the wrapped type
type EventDescriptor struct {
	Name          string                // event name
	DeclaringType TypeRef               // type that declares the event
	HandlerType   TypeRef               // delegate type of the event
	Static        bool                  // whether the event is static
	Invoke        []ParameterDescriptor // the delegate's invocation signature
}

// SurfaceModel is the abstract description of a type's public surface.
// It is built once per generation run and never modified afterwards.
type SurfaceModel struct {
	Type                  TypeRef
	Methods               []MethodDescriptor
	Properties            []PropertyDescriptor
	Events                []EventDescriptor
	Namespaces            []string // sorted, duplicate free
	HasDefaultConstructor bool
	Warnings              []Warning
}

// NeedsInstance reports whether the wrapper has to hold an instance of the
// wrapped type: any instance method, instance property or instance event
// requires one. Static events subscribe through the type name.
func (s *SurfaceModel) NeedsInstance() bool {
	for _, m := range s.Methods {
		if !m.Static {
			return true
		}
	}
	for _, p := range s.Properties {
		if !p.Static {
			return true
		}
	}
	for _, e := range s.Events {
		if !e.Static {
			return true
		}
	}
	return false
}

// MemberCount returns the number of surfaced members
func (s *SurfaceModel) MemberCount() int {
	return len(s.Methods) + len(s.Properties) + len(s.Events)
}
