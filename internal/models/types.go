package models

import "strings"

// VoidTypeName is the reflected full name of the "no value" return type
const VoidTypeName = "System.Void"

// TypeRef identifies a type without holding a reflection handle
type TypeRef struct {
	Name               string    // simple name, arity marker stripped; nested types as Outer.Inner
	Namespace          string    // owning namespace, empty for generic parameters
	Args               []TypeRef // generic arguments in declaration order
	ArrayRank          int       // 0 when not an array, 1 for T[], 2 for T[,]
	IsGenericParameter bool      // method or type generic parameter such as T
	// NestedArity splits Args across the dotted parts of Name, outermost
	// first. Nil means every argument belongs to the innermost part.
	NestedArity []int
}

// FullName returns the namespace-qualified name without generic arguments
func (t TypeRef) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// IsVoid reports whether the reference is the "no value" sentinel
func (t TypeRef) IsVoid() bool {
	return t.ArrayRank == 0 && t.FullName() == VoidTypeName
}

// IsGeneric reports whether the reference carries generic arguments
func (t TypeRef) IsGeneric() bool {
	return len(t.Args) > 0
}

// NameParts returns the dotted parts of Name, each paired with the generic
// arguments it declares
func (t TypeRef) NameParts() ([]string, [][]TypeRef) {
	parts := strings.Split(t.Name, ".")
	args := make([][]TypeRef, len(parts))
	total := 0
	for _, arity := range t.NestedArity {
		total += arity
	}
	if len(t.NestedArity) != len(parts) || total != len(t.Args) {
		args[len(parts)-1] = t.Args
		return parts, args
	}
	next := 0
	for i, arity := range t.NestedArity {
		args[i] = t.Args[next : next+arity]
		next += arity
	}
	return parts, args
}

// ElementType returns the reference with its array rank removed
func (t TypeRef) ElementType() TypeRef {
	t.ArrayRank = 0
	return t
}

// String returns a reflection-style name, for diagnostics
func (t TypeRef) String() string {
	var b strings.Builder
	b.WriteString(t.FullName())
	if len(t.Args) > 0 {
		b.WriteString("[")
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(arg.String())
		}
		b.WriteString("]")
	}
	if t.ArrayRank > 0 {
		b.WriteString("[" + strings.Repeat(",", t.ArrayRank-1) + "]")
	}
	return b.String()
}

// Void returns the void sentinel reference
func Void() TypeRef {
	return TypeRef{Name: "Void", Namespace: "System"}
}
