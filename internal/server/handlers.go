package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/JeremyTCD/QuickWrap/internal/config"
	"github.com/JeremyTCD/QuickWrap/internal/docs"
	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/generator"
	"github.com/JeremyTCD/QuickWrap/internal/manifest"
	"github.com/JeremyTCD/QuickWrap/internal/models"
	"github.com/JeremyTCD/QuickWrap/internal/surface"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// Artifact selectors for GenerateRequest.Artifacts
const (
	ArtifactsBoth           = "both"
	ArtifactsInterface      = "interface"
	ArtifactsImplementation = "implementation"
)

// GenerateRequest is the body of POST /v1/generate
type GenerateRequest struct {
	// Manifest is either a manifest object or a string holding YAML or JSON
	Manifest json.RawMessage `json:"manifest"`

	// Types lists the types to wrap; empty means every manifest type
	Types []string `json:"types,omitempty"`

	Namespace       string            `json:"namespace,omitempty"`
	NamespacePrefix string            `json:"namespace_prefix,omitempty"`
	InterfacePrefix string            `json:"interface_prefix,omitempty"`
	ServiceSuffix   string            `json:"service_suffix,omitempty"`
	Keywords        map[string]string `json:"keywords,omitempty"`

	// Docs is the content of an XML documentation file
	Docs string `json:"docs,omitempty"`

	// Artifacts selects what is rendered (default: both)
	Artifacts string `json:"artifacts,omitempty"`
}

// GeneratedType is the output for one wrapped type
type GeneratedType struct {
	Type           string           `json:"type"`
	Namespace      string           `json:"namespace"`
	InterfaceName  string           `json:"interface_name"`
	ClassName      string           `json:"class_name"`
	Interface      string           `json:"interface,omitempty"`
	Implementation string           `json:"implementation,omitempty"`
	Warnings       []models.Warning `json:"warnings"`
}

// GenerateResponse is the body of a successful POST /v1/generate
type GenerateResponse struct {
	RequestID string          `json:"request_id"`
	Results   []GeneratedType `json:"results"`
}

var validateArtifacts = utils.IsOneOf("artifacts", ArtifactsBoth, ArtifactsInterface, ArtifactsImplementation)

// generate runs the full pipeline for every requested type. Each request
// gets its own rendering context.
func (s *Server) generate(c echo.Context) error {
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return ErrBadRequest("request body is not valid JSON")
	}

	project, err := req.project()
	if err != nil {
		return err
	}
	if req.Artifacts == "" {
		req.Artifacts = ArtifactsBoth
	}
	if err := validateArtifacts(req.Artifacts); err != nil {
		return ErrBadRequest(err.Error())
	}

	m, err := req.manifest()
	if err != nil {
		return err
	}

	var lookup generator.Documentation
	if req.Docs != "" {
		parsed, err := docs.Decode(strings.NewReader(req.Docs))
		if err != nil {
			return ErrBadRequest(err.Error())
		}
		lookup = parsed
	}

	typeNames := project.Types
	if len(typeNames) == 0 {
		typeNames = m.TypeNames()
	}

	builder := surface.NewBuilder()
	codeGenerator := generator.NewGenerator(project.NewRenderer())
	naming := project.Naming()

	response := GenerateResponse{
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		Results:   make([]GeneratedType, 0, len(typeNames)),
	}
	for _, typeName := range typeNames {
		model, err := builder.Build(m, typeName)
		if err != nil {
			return err
		}

		opts := generator.Options{Namespace: project.NamespaceFor(model.Type), Docs: lookup}
		result, err := render(codeGenerator, req.Artifacts, model, opts)
		if err != nil {
			return err
		}
		result.Type = model.Type.FullName()
		result.Namespace = opts.Namespace
		result.InterfaceName = naming.InterfaceName(model.Type)
		result.ClassName = naming.ClassName(model.Type)
		result.Warnings = append([]models.Warning{}, model.Warnings...)

		response.Results = append(response.Results, result)
	}

	s.diagnostics.Verbose("request %s generated %d wrappers", response.RequestID, len(response.Results))
	return c.JSON(http.StatusOK, response)
}

// render produces the selected artifacts of one model
func render(g generator.CodeGenerator, artifacts string, model *models.SurfaceModel, opts generator.Options) (GeneratedType, error) {
	var out GeneratedType
	switch artifacts {
	case ArtifactsInterface:
		iface, err := g.GenerateInterface(model, opts)
		if err != nil {
			return out, err
		}
		out.Interface = iface
	case ArtifactsImplementation:
		impl, err := g.GenerateImplementation(model, opts)
		if err != nil {
			return out, err
		}
		out.Implementation = impl
	default:
		result, err := g.Generate(model, opts)
		if err != nil {
			return out, err
		}
		out.Interface = result.Interface
		out.Implementation = result.Implementation
	}
	return out, nil
}

// project applies the request options on top of the default configuration
func (r *GenerateRequest) project() (*config.Config, error) {
	project := config.Default()
	project.Types = r.Types
	project.OutputNamespace = r.Namespace
	project.NamespacePrefix = r.NamespacePrefix
	if r.InterfacePrefix != "" {
		project.InterfacePrefix = r.InterfacePrefix
	}
	if r.ServiceSuffix != "" {
		project.ServiceSuffix = r.ServiceSuffix
	}
	if r.Keywords != nil {
		project.Keywords = r.Keywords
	}

	if err := project.Validate(); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid generation options", err)
	}
	return project, nil
}

// manifest decodes the embedded manifest
func (r *GenerateRequest) manifest() (*manifest.Manifest, error) {
	raw := bytes.TrimSpace(r.Manifest)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.New(errors.ManifestErrorCode, "request does not contain a manifest").
			WithSuggestion("Send the manifest as an object or as a YAML string in the 'manifest' field")
	}

	document := raw
	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, errors.Wrap(errors.ManifestErrorCode, "manifest string is not valid JSON", err)
		}
		document = []byte(text)
	}

	m, err := manifest.Decode(bytes.NewReader(document))
	if err != nil {
		return nil, errors.Wrap(errors.ManifestErrorCode, "failed to decode manifest", err)
	}
	return m, nil
}
