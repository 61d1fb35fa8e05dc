package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

const clientManifest = `
schemaVersion: v1.0.0
delegates:
  - name: Contoso.Messaging.Handler
    parameters:
      - {name: result, type: Contoso.Messaging.Result}
types:
  - name: Contoso.Messaging.Client
    methods:
      - name: Send
        access: public
        returnType: Contoso.Messaging.Response
        parameters:
          - {name: request, type: Contoso.Messaging.Request}
          - {name: retries, type: System.Int32, hasDefaultValue: true}
    properties:
      - name: Timeout
        type: System.TimeSpan
        getter: public
        setter: public
    events:
      - name: Completed
        handlerType: Contoso.Messaging.Handler
        access: public
`

func newTestServer() *Server {
	config := DefaultServerConfig()
	config.EnableLogger = false
	return NewServer(config, utils.NewDiagnostics(utils.DiagnosticSilent, io.Discard))
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "request IDs are UUIDs")
}

func TestGenerate(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/generate", map[string]interface{}{
		"manifest":  clientManifest,
		"namespace": "Contoso.Services",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), resp.RequestID)
	require.Len(t, resp.Results, 1)

	result := resp.Results[0]
	assert.Equal(t, "Contoso.Messaging.Client", result.Type)
	assert.Equal(t, "Contoso.Services", result.Namespace)
	assert.Equal(t, "IClientService", result.InterfaceName)
	assert.Equal(t, "ClientService", result.ClassName)
	assert.Contains(t, result.Interface, "        Response Send(Request request, int retries);\n")
	assert.Contains(t, result.Interface, "        event Handler Completed;\n")
	assert.Contains(t, result.Implementation, "        public TimeSpan Timeout { get => _client.Timeout; set => _client.Timeout = value; }\n")
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Send(Contoso.Messaging.Request, System.Int32)", result.Warnings[0].Member)
}

func TestGenerate_ManifestObjectAndOptions(t *testing.T) {
	manifest := map[string]interface{}{
		"schemaVersion": "v1.1.0",
		"types": []interface{}{
			map[string]interface{}{
				"name": "Contoso.Parser",
				"methods": []interface{}{
					map[string]interface{}{
						"name":       "Parse",
						"access":     "public",
						"static":     true,
						"returnType": "System.IntPtr",
						"parameters": []interface{}{
							map[string]interface{}{"name": "text", "type": "System.String"},
						},
					},
				},
			},
		},
	}

	tests := []struct {
		name      string
		artifacts string
		iface     bool
		impl      bool
	}{
		{name: "both", artifacts: "", iface: true, impl: true},
		{name: "interface only", artifacts: ArtifactsInterface, iface: true},
		{name: "implementation only", artifacts: ArtifactsImplementation, impl: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/generate", map[string]interface{}{
				"manifest":         manifest,
				"namespace_prefix": "Wrappers",
				"service_suffix":   "Proxy",
				"keywords":         map[string]string{"System.IntPtr": "nint"},
				"artifacts":        tt.artifacts,
			})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp GenerateResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Len(t, resp.Results, 1)

			result := resp.Results[0]
			assert.Equal(t, "Wrappers.Contoso", result.Namespace)
			assert.Equal(t, "IParserProxy", result.InterfaceName)
			assert.Equal(t, tt.iface, result.Interface != "")
			assert.Equal(t, tt.impl, result.Implementation != "")
			if tt.impl {
				assert.Contains(t, result.Implementation, "        public nint Parse(string text)\n")
			}
		})
	}
}

func TestGenerate_Docs(t *testing.T) {
	docs := `<doc><members><member name="P:Contoso.Messaging.Client.Timeout"><summary>Request timeout.</summary></member></members></doc>`

	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/generate", map[string]interface{}{
		"manifest":  clientManifest,
		"docs":      docs,
		"artifacts": ArtifactsInterface,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Results[0].Interface, "        /// Request timeout.\n        /// </summary>\n        TimeSpan Timeout { get; set; }\n")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{
			name:   "malformed body",
			body:   `{"manifest":`,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing manifest",
			body:   map[string]interface{}{"types": []string{"Contoso.Client"}},
			status: http.StatusBadRequest,
			code:   "ManifestError",
		},
		{
			name:   "invalid manifest",
			body:   map[string]interface{}{"manifest": "schemaVersion: v2.0.0\ntypes: []"},
			status: http.StatusBadRequest,
			code:   "ManifestError",
		},
		{
			name:   "unknown type",
			body:   map[string]interface{}{"manifest": clientManifest, "types": []string{"Contoso.Missing"}},
			status: http.StatusNotFound,
			code:   "UnresolvableTypeError",
		},
		{
			name:   "invalid namespace",
			body:   map[string]interface{}{"manifest": clientManifest, "namespace": "Contoso..Services"},
			status: http.StatusBadRequest,
			code:   "ConfigurationError",
		},
		{
			name:   "invalid derived names",
			body:   map[string]interface{}{"manifest": clientManifest, "service_suffix": "-Service"},
			status: http.StatusUnprocessableEntity,
			code:   "InvalidIdentifierError",
		},
		{
			name:   "unknown artifacts",
			body:   map[string]interface{}{"manifest": clientManifest, "artifacts": "everything"},
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid docs",
			body:   map[string]interface{}{"manifest": clientManifest, "docs": "<doc>"},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/generate", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var httpErr HttpError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
			assert.NotEmpty(t, httpErr.Message)
			assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), httpErr.RequestID)
		})
	}
}

func TestGenerate_ReportsEveryInvalidIdentifier(t *testing.T) {
	manifest := `
schemaVersion: v1.0.0
types:
  - name: Contoso.Client
    methods:
      - name: Send
        access: public
        returnType: System.Void
        parameters:
          - {name: "bad-name", type: System.String}
          - {name: "other name", type: System.String}
`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/generate", map[string]interface{}{"manifest": manifest})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var httpErr HttpError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	assert.Len(t, httpErr.Problems, 2)
}

func TestToHttpError_Plain(t *testing.T) {
	httpErr := toHttpError(io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "unexpected EOF", httpErr.Message)
}
