package templates

// Template names
const (
	InterfaceTemplateName      = "interface"
	ImplementationTemplateName = "implementation"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerInterfaceTemplates()
	registry.registerImplementationTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// registerInterfaceTemplates registers the interface compilation unit
func (tr *TemplateRegistry) registerInterfaceTemplates() {
	tr.templates[InterfaceTemplateName] = `{{header .Source}}
{{range .Usings}}using {{.}};
{{end}}
namespace {{.Namespace}}
{
    public interface {{.Name}}
    {
{{range .Properties}}{{doc .Doc}}        {{.Type}} {{.Name}} { {{if .Readable}}get; {{end}}{{if .Writable}}set; {{end}}}
{{end}}{{range .Methods}}{{doc .Doc}}        {{.ReturnType}} {{.Name}}{{typeParams .TypeParameters}}({{params .Parameters}});
{{end}}{{range .Events}}{{doc .Doc}}        event {{.Type}} {{.Name}};
{{end}}    }
}
`
}

// registerImplementationTemplates registers the delegating class
// compilation unit
func (tr *TemplateRegistry) registerImplementationTemplates() {
	tr.templates[ImplementationTemplateName] = `{{header .Source}}
{{range .Usings}}using {{.}};
{{end}}
namespace {{.Namespace}}
{
    public class {{.Name}} : {{.Interface}}
    {
{{if .HasField}}{{separator}}        private {{.WrappedType}} {{.Field}};
{{end}}{{if or .HasField .Events}}{{separator}}        public {{.Name}}()
        {
{{if .HasField}}            {{.Field}} = new {{.WrappedType}}();
{{end}}{{range .Events}}            {{.Target}}.{{.Name}} += ({{params .Parameters}}) => {{.Name}}?.Invoke({{args .Parameters}});
{{end}}        }
{{end}}{{range .Properties}}{{separator}}        public {{.Type}} {{.Name}} { {{if .Readable}}get => {{.Target}}.{{.Name}}; {{end}}{{if .Writable}}set => {{.Target}}.{{.Name}} = value; {{end}}}
{{end}}{{range .Methods}}{{separator}}        public {{.ReturnType}} {{.Name}}{{typeParams .TypeParameters}}({{params .Parameters}})
        {
            {{if .Returns}}return {{end}}{{.Target}}.{{.Name}}{{typeParams .TypeParameters}}({{args .Parameters}});
        }
{{end}}{{range .Events}}{{separator}}        public event {{.Type}} {{.Name}};
{{end}}    }
}
`
}
