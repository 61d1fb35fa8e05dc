package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeremyTCD/QuickWrap/internal/errors"
	"github.com/JeremyTCD/QuickWrap/internal/templates"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

const messagingManifest = `
schemaVersion: v1.0.0
assembly: Contoso.Messaging
delegates:
  - name: Contoso.Messaging.Handler
    parameters:
      - {name: result, type: Contoso.Messaging.Result}
types:
  - name: Contoso.Messaging.Client
    constructors:
      - access: public
    methods:
      - name: Send
        access: public
        returnType: Contoso.Messaging.Response
        parameters:
          - {name: request, type: Contoso.Messaging.Request}
          - {name: retries, type: System.Int32, hasDefaultValue: true}
      - name: Parse
        access: public
        static: true
        returnType: Contoso.Messaging.Client
        parameters:
          - {name: text, type: System.String}
    properties:
      - name: Timeout
        type: System.TimeSpan
        getter: public
        setter: public
    events:
      - name: Completed
        handlerType: Contoso.Messaging.Handler
        access: public
  - name: Contoso.Messaging.Parser
    methods:
      - name: Parse
        access: public
        static: true
        returnType: Contoso.Messaging.Result
        parameters:
          - {name: text, type: System.String}
`

const messagingDocs = `<?xml version="1.0"?>
<doc>
  <members>
    <member name="M:Contoso.Messaging.Client.Send(Contoso.Messaging.Request,System.Int32)">
      <summary>Sends a request.</summary>
    </member>
  </members>
</doc>
`

// newWorkspace creates a project directory holding the messaging manifest
// and makes it the working directory
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "surface.yaml"), []byte(messagingManifest), 0644))
	return dir
}

func newTestGenerator(buf *bytes.Buffer) *Generator {
	return NewGenerator(utils.NewDiagnostics(utils.DiagnosticDebug, buf))
}

func TestGenerator_Run(t *testing.T) {
	dir := newWorkspace(t)
	var buf bytes.Buffer
	g := newTestGenerator(&buf)

	err := g.Run(Config{
		Manifest:  "surface.yaml",
		Types:     []string{"Contoso.Messaging.Client"},
		Namespace: "Contoso.Services",
		OutputDir: "out",
	})
	require.NoError(t, err)

	summary := g.GetSummary()
	assert.Equal(t, 1, summary.TypesProcessed)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, []string{
		filepath.Join("out", "IClientService.cs"),
		filepath.Join("out", "ClientService.cs"),
	}, summary.GeneratedFiles)

	iface, err := os.ReadFile(filepath.Join(dir, "out", "IClientService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(iface), templates.GeneratedMarker+" from Contoso.Messaging.Client.")
	assert.Contains(t, string(iface), "namespace Contoso.Services\n")
	assert.Contains(t, string(iface), "        Response Send(Request request, int retries);\n")
	assert.Contains(t, string(iface), "        Client Parse(string text);\n")

	impl, err := os.ReadFile(filepath.Join(dir, "out", "ClientService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(impl), "public class ClientService : IClientService")
	assert.Contains(t, string(impl), "            _client.Completed += (Result result) => Completed?.Invoke(result);\n")
	assert.Contains(t, string(impl), "            return Client.Parse(text);\n")

	output := buf.String()
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "default-value-dropped")
	assert.Contains(t, output, "Contoso.Messaging.Client -> IClientService, ClientService (2 methods, 1 properties, 1 events)")
	assert.Contains(t, output, "Generation complete")
}

func TestGenerator_Run_AllTypes(t *testing.T) {
	dir := newWorkspace(t)
	var buf bytes.Buffer
	g := newTestGenerator(&buf)

	require.NoError(t, g.Run(Config{Manifest: "surface.yaml", OutputDir: "out"}))

	assert.Equal(t, 2, g.GetSummary().TypesProcessed)
	assert.Len(t, g.GetSummary().GeneratedFiles, 4)

	// A static-only type does not need a default constructor or an instance
	impl, err := os.ReadFile(filepath.Join(dir, "out", "ParserService.cs"))
	require.NoError(t, err)
	assert.NotContains(t, string(impl), "private Parser")
	assert.Contains(t, string(impl), "namespace Contoso.Messaging\n")
}

func TestGenerator_Run_ConfigFile(t *testing.T) {
	dir := newWorkspace(t)
	project := `
manifest = "surface.yaml"
types = ["Contoso.Messaging.Parser"]
namespace_prefix = "Jering.IocServices"
output_dir = "wrappers"
service_suffix = "Wrapper"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quickwrap.toml"), []byte(project), 0644))

	var buf bytes.Buffer
	g := newTestGenerator(&buf)
	require.NoError(t, g.Run(Config{}))

	impl, err := os.ReadFile(filepath.Join(dir, "wrappers", "ParserWrapper.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(impl), "namespace Jering.IocServices.Contoso.Messaging\n")
	assert.Contains(t, string(impl), "public class ParserWrapper : IParserWrapper")
	assert.FileExists(t, filepath.Join(dir, "wrappers", "IParserWrapper.cs"))
}

func TestGenerator_Run_Docs(t *testing.T) {
	dir := newWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Contoso.Messaging.xml"), []byte(messagingDocs), 0644))

	var buf bytes.Buffer
	g := newTestGenerator(&buf)
	require.NoError(t, g.Run(Config{
		Manifest: "surface.yaml",
		Types:    []string{"Contoso.Messaging.Client"},
		Docs:     "Contoso.Messaging.xml",
	}))

	iface, err := os.ReadFile(filepath.Join(dir, "generated", "IClientService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(iface), "        /// <summary>\n        /// Sends a request.\n        /// </summary>\n")
}

func TestGenerator_Run_MissingDocsIsAWarning(t *testing.T) {
	newWorkspace(t)
	var buf bytes.Buffer
	g := newTestGenerator(&buf)

	require.NoError(t, g.Run(Config{
		Manifest: "surface.yaml",
		Types:    []string{"Contoso.Messaging.Parser"},
		Docs:     "missing.xml",
	}))
	assert.Contains(t, buf.String(), "Documentation comments disabled")
}

func TestGenerator_Run_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.ErrorCode
	}{
		{
			name: "no manifest",
			cfg:  Config{},
			code: errors.ConfigurationErrorCode,
		},
		{
			name: "missing manifest file",
			cfg:  Config{Manifest: "absent.yaml"},
			code: errors.ManifestErrorCode,
		},
		{
			name: "unknown type",
			cfg:  Config{Manifest: "surface.yaml", Types: []string{"Contoso.Messaging.Missing"}},
			code: errors.UnresolvableTypeErrorCode,
		},
		{
			name: "invalid namespace flag",
			cfg:  Config{Manifest: "surface.yaml", Namespace: "Contoso..Services"},
			code: errors.ConfigurationErrorCode,
		},
		{
			name: "missing config file",
			cfg:  Config{Manifest: "surface.yaml", ConfigPath: "absent.toml"},
			code: errors.ConfigurationErrorCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newWorkspace(t)
			var buf bytes.Buffer
			err := newTestGenerator(&buf).Run(tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.NoDirExists(t, filepath.Join(dir, "generated"))
		})
	}
}

func TestGenerator_Run_SameSimpleName(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("surface.yaml", []byte(`
schemaVersion: v1.0.0
types:
  - name: Contoso.A.Client
    methods:
      - {name: FromA, access: public, static: true, returnType: System.Void}
  - name: Contoso.B.Client
    methods:
      - {name: FromB, access: public, static: true, returnType: System.Void}
`), 0644))

	var buf bytes.Buffer
	g := newTestGenerator(&buf)
	err := g.Run(Config{Manifest: "surface.yaml", OutputDir: "out"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.FileSystemErrorCode), "got %v", err)
	assert.Contains(t, err.Error(), "'Contoso.A.Client' and 'Contoso.B.Client' both generate")
	assert.NoDirExists(t, filepath.Join(dir, "out"))
	assert.Empty(t, g.GetSummary().GeneratedFiles)

	t.Run("separate output directories", func(t *testing.T) {
		for _, tt := range []struct{ typeName, out, member string }{
			{typeName: "Contoso.A.Client", out: "a", member: "FromA"},
			{typeName: "Contoso.B.Client", out: "b", member: "FromB"},
		} {
			require.NoError(t, newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml", Types: []string{tt.typeName}, OutputDir: tt.out}))
			content, err := os.ReadFile(filepath.Join(dir, tt.out, "ClientService.cs"))
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.member)
		}
	})
}

func TestGenerator_Run_NestedGenericTypes(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile("surface.yaml", []byte(`
schemaVersion: v1.0.0
types:
  - name: Contoso.Collections.Bag
    methods:
      - name: Nested
        access: public
        returnType: Contoso.Outer`+"`"+`1+Inner[System.Int32]
      - name: GetEnumerator
        access: public
        returnType: System.Collections.Generic.List`+"`"+`1+Enumerator[System.String]
`), 0644))

	var buf bytes.Buffer
	require.NoError(t, newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml"}))

	content, err := os.ReadFile(filepath.Join("generated", "IBagService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "        Outer<int>.Inner Nested();\n")
	assert.Contains(t, string(content), "        List<string>.Enumerator GetEnumerator();\n")
}

func TestGenerator_Run_Strict(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile("surface.yaml", []byte(`
schemaVersion: v1.0.0
types:
  - name: Contoso.Collections.Table
    methods:
      - name: TryGet
        access: public
        returnType: System.Boolean
        parameters:
          - {name: value, type: System.Int32&}
      - {name: Clear, access: public, returnType: System.Void}
    properties:
      - name: Item
        type: System.String
        getter: public
        indexParameters:
          - {name: index, type: System.Int32}
`), 0644))

	var buf bytes.Buffer
	require.NoError(t, newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml"}))
	assert.Contains(t, buf.String(), "[unsupported-member]")

	err := newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml", OutputDir: "strict", Strict: true})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.UnsupportedMemberErrorCode), "got %v", err)
	assert.Contains(t, err.Error(), "TryGet(System.Int32&)")
	assert.Contains(t, err.Error(), "indexers are not supported")
	assert.NoDirExists(t, filepath.Join(dir, "strict"))
}

func TestGenerator_Run_SameTypeTwice(t *testing.T) {
	newWorkspace(t)
	var buf bytes.Buffer
	err := newTestGenerator(&buf).Run(Config{Manifest: "surface.yaml", Types: []string{"Parser", "Contoso.Messaging.Parser"}})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("generated", "ParserService.cs"))
}

func TestGenerator_Inspect(t *testing.T) {
	newWorkspace(t)
	var buf, out bytes.Buffer
	g := newTestGenerator(&buf)

	require.NoError(t, g.Inspect(Config{Manifest: "surface.yaml"}, &out))

	expected := `Contoso.Messaging.Client (2 methods, 1 properties, 1 events)
  namespaces: Contoso.Messaging, System
  default constructor: true
  methods:
    Response Send(Request request, int retries)
    static Client Parse(string text)
  properties:
    TimeSpan Timeout { get; set; }
  events:
    Handler Completed(Result result)
  warnings:
    Send(Contoso.Messaging.Request, System.Int32) [default-value-dropped]: default value of parameter 'retries' is not preserved

Contoso.Messaging.Parser (1 methods, 0 properties, 0 events)
  namespaces: Contoso.Messaging, System
  default constructor: true
  methods:
    static Result Parse(string text)
`
	assert.Equal(t, expected, out.String())
}

func TestGenerator_Run_HttpClientExample(t *testing.T) {
	example, err := filepath.Abs(filepath.Join("..", "..", "examples", "httpclient"))
	require.NoError(t, err)
	out := t.TempDir()
	chdir(t, example)

	var buf bytes.Buffer
	g := newTestGenerator(&buf)
	require.NoError(t, g.Run(Config{OutputDir: out}))

	iface, err := os.ReadFile(filepath.Join(out, "IHttpClientService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(iface), "namespace Jering.IocServices.System.Net.Http\n")
	assert.Contains(t, string(iface), "using System.Threading.Tasks;\n")
	assert.Contains(t, string(iface), "        HttpRequestHeaders DefaultRequestHeaders { get; }\n")
	assert.Contains(t, string(iface), "        /// Send a GET request to the specified Uri as an asynchronous operation.\n")
	assert.Contains(t, string(iface), "        Task<HttpResponseMessage> GetAsync(string requestUri);\n")
	assert.Contains(t, string(iface), "        void CancelPendingRequests();\n")
	assert.NotContains(t, string(iface), "Dispose")
	assert.NotContains(t, string(iface), "CheckDisposed")

	impl, err := os.ReadFile(filepath.Join(out, "HttpClientService.cs"))
	require.NoError(t, err)
	assert.Contains(t, string(impl), "            _httpClient = new HttpClient();\n")
	assert.Contains(t, string(impl), "            _httpClient.CancelPendingRequests();\n")
	assert.Contains(t, string(impl), "        public long MaxResponseContentBufferSize { get => _httpClient.MaxResponseContentBufferSize; set => _httpClient.MaxResponseContentBufferSize = value; }\n")

	assert.Equal(t, 1, g.GetSummary().Warnings)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (stand-in for testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
