package surface

import (
	"sort"

	"github.com/JeremyTCD/QuickWrap/internal/models"
)

// CollectNamespaces returns the namespaces of every type the model refers to,
// generic arguments included, plus the wrapped type's own namespace. The
// result is sorted and duplicate free. Parent and child namespaces are both
// kept since a using directive does not import nested namespaces.
func CollectNamespaces(model *models.SurfaceModel) []string {
	set := make(map[string]struct{})

	addNamespaces(set, model.Type)
	for _, m := range model.Methods {
		addNamespaces(set, m.ReturnType)
		for _, p := range m.Parameters {
			addNamespaces(set, p.Type)
		}
	}
	for _, p := range model.Properties {
		addNamespaces(set, p.Type)
	}
	for _, e := range model.Events {
		addNamespaces(set, e.HandlerType)
		for _, p := range e.Invoke {
			addNamespaces(set, p.Type)
		}
	}

	namespaces := make([]string, 0, len(set))
	for ns := range set {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	return namespaces
}

func addNamespaces(set map[string]struct{}, ref models.TypeRef) {
	if ref.Namespace != "" && !ref.IsGenericParameter {
		set[ref.Namespace] = struct{}{}
	}
	for _, arg := range ref.Args {
		addNamespaces(set, arg)
	}
}
