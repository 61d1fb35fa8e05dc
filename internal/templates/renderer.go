package templates

import (
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/models"
)

const nullableTypeName = "System.Nullable"

// Renderer is the per-run rendering context
type Renderer struct {
	keywords KeywordTable
	naming   Naming
	registry *TemplateRegistry
}

// Option configures a Renderer
type Option func(*Renderer)

// WithKeywords applies keyword overrides on top of the defaults
func WithKeywords(overrides map[string]string) Option {
	return func(r *Renderer) {
		r.keywords = r.keywords.With(overrides)
	}
}

// WithNaming replaces the interface and class naming rules
func WithNaming(naming Naming) Option {
	return func(r *Renderer) {
		r.naming = naming
	}
}

// NewRenderer creates a new rendering context
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		keywords: DefaultKeywords(),
		naming:   DefaultNaming(),
		registry: NewTemplateRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Naming returns the naming rules of this context
func (r *Renderer) Naming() Naming {
	return r.naming
}

// TypeName renders ref as a C# type expression: keywords for built-in
// types, Name<A, B> for generics, T? for nullable value types and []
// or [,] for arrays.
func (r *Renderer) TypeName(ref models.TypeRef) string {
	return r.elementTypeName(ref) + arraySuffix(ref.ArrayRank)
}

func (r *Renderer) elementTypeName(ref models.TypeRef) string {
	if ref.IsGenericParameter {
		return ref.Name
	}

	if len(ref.Args) == 0 {
		if keyword, ok := r.keywords.Lookup(ref.FullName()); ok {
			return keyword
		}
		return ref.Name
	}

	if ref.FullName() == nullableTypeName && len(ref.Args) == 1 {
		return r.TypeName(ref.Args[0]) + "?"
	}

	parts, partArgs := ref.NameParts()
	for i, args := range partArgs {
		if len(args) == 0 {
			continue
		}
		rendered := make([]string, len(args))
		for j, arg := range args {
			rendered[j] = r.TypeName(arg)
		}
		parts[i] += "<" + strings.Join(rendered, ", ") + ">"
	}
	return strings.Join(parts, ".")
}

func arraySuffix(rank int) string {
	if rank <= 0 {
		return ""
	}
	return "[" + strings.Repeat(",", rank-1) + "]"
}
