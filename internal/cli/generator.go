package cli

import (
	"path/filepath"
	"time"

	"github.com/JeremyTCD/QuickWrap/internal/config"
	"github.com/JeremyTCD/QuickWrap/internal/docs"
	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/generator"
	"github.com/JeremyTCD/QuickWrap/internal/manifest"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/surface"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	builder     *surface.Builder
	diagnostics *utils.DiagnosticSystem
	summary     GenerationSummary
}

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	TypesProcessed int
	Warnings       int
	GeneratedFiles []string
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		builder:     surface.NewBuilder(),
		diagnostics: diagnostics,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process: every requested type is
// built, rendered and written before the summary is printed. The first
// failing type aborts the run.
func (g *Generator) Run(cfg Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	project, m, err := g.load(cfg)
	if err != nil {
		return err
	}
	lookup := g.loadDocs(project.Docs)

	typeNames, err := selectTypes(project, m)
	if err != nil {
		return err
	}
	g.diagnostics.Debug("Wrapping types: %v", typeNames)

	g.diagnostics.Section("Generating wrappers")
	g.diagnostics.Indent()
	err = g.generateAll(project, m, lookup, typeNames)
	g.diagnostics.Unindent()
	if err != nil {
		return err
	}

	g.diagnostics.Summary("Generation complete", map[string]interface{}{
		"types":    g.summary.TypesProcessed,
		"files":    len(g.summary.GeneratedFiles),
		"warnings": g.summary.Warnings,
		"output":   project.OutputDir,
	})
	g.diagnostics.Verbose("Finished in %s", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// rendered is a generated wrapper waiting to be written
type rendered struct {
	typeName string
	model    *models.SurfaceModel
	result   *generator.Result
}

func (g *Generator) generateAll(project *config.Config, m *manifest.Manifest, lookup *docs.Lookup, typeNames []string) error {
	codeGenerator := generator.NewGenerator(project.NewRenderer())

	pending := make([]rendered, 0, len(typeNames))
	for _, typeName := range typeNames {
		model, err := g.builder.Build(m, typeName)
		if err != nil {
			return err
		}
		if project.Strict {
			if err := unsupportedMembers(model); err != nil {
				return errors.Wrapf(errors.UnsupportedMemberErrorCode, err, "'%s' has members that cannot be wrapped", typeName).
					WithContext("type", typeName).
					WithSuggestion("Run without --strict to skip these members with a warning")
			}
		}

		opts := generator.Options{Namespace: project.NamespaceFor(model.Type)}
		if lookup != nil {
			opts.Docs = lookup
		}

		result, err := codeGenerator.Generate(model, opts)
		if err != nil {
			return errors.Wrapf(errors.CodeOf(err), err, "failed to generate wrapper for '%s'", typeName).
				WithContext("type", typeName)
		}
		pending = append(pending, rendered{typeName: typeName, model: model, result: result})
	}

	// Nothing is written when two types map to the same file
	if err := checkCollisions(project.OutputDir, pending); err != nil {
		return err
	}

	for _, r := range pending {
		files, err := g.write(project.OutputDir, r.result)
		if err != nil {
			return err
		}

		g.reportWarnings(r.result.Warnings)
		g.summary.TypesProcessed++
		g.summary.Warnings += len(r.result.Warnings)
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, files...)
		g.diagnostics.PhaseItem("%s -> %s, %s (%s)", r.typeName, r.result.InterfaceName, r.result.ClassName, describeCounts(r.model))
	}
	return nil
}

// unsupportedMembers aggregates the members the model had to leave out
func unsupportedMembers(model *models.SurfaceModel) error {
	var collector errors.Collector
	for _, w := range model.Warnings {
		if w.Kind == models.WarningUnsupportedMember {
			collector.Add(errors.NewUnsupportedMemberError(w.Member, w.Reason))
		}
	}
	return collector.ErrorOrNil()
}

// checkCollisions fails when two wrapped types would write the same file
func checkCollisions(dir string, pending []rendered) error {
	owners := make(map[string]string, len(pending)*2)
	for _, r := range pending {
		wrapped := r.model.Type.String()
		for _, name := range []string{r.result.InterfaceName, r.result.ClassName} {
			path := outputPath(dir, name)
			if owner, ok := owners[path]; ok && owner != wrapped {
				return errors.Newf(errors.FileSystemErrorCode, "'%s' and '%s' both generate '%s'", owner, wrapped, path).
					WithContext("path", path).
					WithContext("types", []string{owner, wrapped}).
					WithSuggestions(
						"Generate the types in separate runs with different --out directories",
						"Set service_suffix or interface_prefix in quickwrap.toml for one of the runs",
					)
			}
			owners[path] = wrapped
		}
	}
	return nil
}

func outputPath(dir, name string) string {
	return filepath.Join(dir, name+".cs")
}

// load resolves the configuration and reads the manifest it names
func (g *Generator) load(cfg Config) (*config.Config, *manifest.Manifest, error) {
	project, err := cfg.Resolve()
	if err != nil {
		return nil, nil, err
	}
	g.diagnostics.Verbose("Reading manifest %s", project.Manifest)

	m, err := manifest.Load(project.Manifest)
	if err != nil {
		return nil, nil, err
	}
	g.diagnostics.Verbose("Manifest schema %s lists %d types", m.SchemaVersion, len(m.Types))
	return project, m, nil
}

// loadDocs reads the documentation file if one is configured. Documentation
// is optional, so failures are reported as warnings.
func (g *Generator) loadDocs(path string) *docs.Lookup {
	if path == "" {
		return nil
	}
	lookup, err := docs.Load(path)
	if err != nil {
		g.diagnostics.Warn("Documentation comments disabled: %v", err)
		return nil
	}
	g.diagnostics.Verbose("Loaded %d documented members from %s", lookup.Len(), path)
	return lookup
}

// write stores the interface and implementation files of result under dir
func (g *Generator) write(dir string, result *generator.Result) ([]string, error) {
	outputs := []struct {
		name    string
		content string
	}{
		{name: result.InterfaceName, content: result.Interface},
		{name: result.ClassName, content: result.Implementation},
	}

	files := make([]string, 0, len(outputs))
	for _, output := range outputs {
		path := outputPath(dir, output.name)
		if err := utils.WriteFile(path, []byte(output.content)); err != nil {
			return files, err
		}
		g.diagnostics.Debug("Wrote %s", path)
		files = append(files, path)
	}
	return files, nil
}

func (g *Generator) reportWarnings(warnings []models.Warning) {
	for _, w := range warnings {
		g.diagnostics.Warn("%s", w)
	}
}

// selectTypes returns the configured types, or every manifest type if none
// are configured
func selectTypes(project *config.Config, m *manifest.Manifest) ([]string, error) {
	if len(project.Types) > 0 {
		return project.Types, nil
	}
	names := m.TypeNames()
	if len(names) == 0 {
		return nil, errors.New(errors.ManifestErrorCode, "manifest does not list any types").
			WithContext("path", project.Manifest)
	}
	return names, nil
}
