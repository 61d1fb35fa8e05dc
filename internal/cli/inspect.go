package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/templates"
)

// Inspect prints the surface model of every requested type to w without
// writing any files
func (g *Generator) Inspect(cfg Config, w io.Writer) error {
	project, m, err := g.load(cfg)
	if err != nil {
		return err
	}

	typeNames, err := selectTypes(project, m)
	if err != nil {
		return err
	}

	renderer := project.NewRenderer()
	for i, typeName := range typeNames {
		model, err := g.builder.Build(m, typeName)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeModel(w, renderer, model)
	}
	return nil
}

func writeModel(w io.Writer, r *templates.Renderer, model *models.SurfaceModel) {
	fmt.Fprintf(w, "%s (%s)\n", model.Type, describeCounts(model))
	fmt.Fprintf(w, "  namespaces: %s\n", strings.Join(model.Namespaces, ", "))
	fmt.Fprintf(w, "  default constructor: %t\n", model.HasDefaultConstructor)

	if len(model.Methods) > 0 {
		fmt.Fprintln(w, "  methods:")
		for _, m := range model.Methods {
			name := m.Name
			if len(m.TypeParameters) > 0 {
				name += "<" + strings.Join(m.TypeParameters, ", ") + ">"
			}
			fmt.Fprintf(w, "    %s%s %s(%s)\n", staticPrefix(m.Static), r.TypeName(m.ReturnType), name, parameterList(r, m.Parameters))
		}
	}

	if len(model.Properties) > 0 {
		fmt.Fprintln(w, "  properties:")
		for _, p := range model.Properties {
			var accessors []string
			if p.Readable {
				accessors = append(accessors, "get;")
			}
			if p.Writable {
				accessors = append(accessors, "set;")
			}
			fmt.Fprintf(w, "    %s%s %s { %s }\n", staticPrefix(p.Static), r.TypeName(p.Type), p.Name, strings.Join(accessors, " "))
		}
	}

	if len(model.Events) > 0 {
		fmt.Fprintln(w, "  events:")
		for _, e := range model.Events {
			fmt.Fprintf(w, "    %s%s %s(%s)\n", staticPrefix(e.Static), r.TypeName(e.HandlerType), e.Name, parameterList(r, e.Invoke))
		}
	}

	if len(model.Warnings) > 0 {
		fmt.Fprintln(w, "  warnings:")
		for _, warning := range model.Warnings {
			fmt.Fprintf(w, "    %s\n", warning)
		}
	}
}

func parameterList(r *templates.Renderer, params []models.ParameterDescriptor) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = r.TypeName(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func staticPrefix(static bool) string {
	if static {
		return "static "
	}
	return ""
}

// describeCounts summarizes the surfaced members of model
func describeCounts(model *models.SurfaceModel) string {
	return fmt.Sprintf("%d methods, %d properties, %d events",
		len(model.Methods), len(model.Properties), len(model.Events))
}
