package generator

import "github.com/JeremyTCD/QuickWrap/internal/models"

// CodeGenerator defines the interface for synthesizing wrapper sources from a surface model
type CodeGenerator interface {
	Generate(model *models.SurfaceModel, opts Options) (*Result, error)
	GenerateInterface(model *models.SurfaceModel, opts Options) (string, error)
	GenerateImplementation(model *models.SurfaceModel, opts Options) (string, error)
}

// Documentation supplies member summaries keyed by documentation ID.
// Implementations return nil when a member is undocumented.
type Documentation interface {
	Summary(id string) []string
}
