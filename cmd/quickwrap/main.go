package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JeremyTCD/QuickWrap/internal/cli"
	"github.com/JeremyTCD/QuickWrap/internal/config"
	"github.com/JeremyTCD/QuickWrap/internal/server"
	"github.com/JeremyTCD/QuickWrap/internal/utils"
)

// app carries the state shared by all subcommands
type app struct {
	opts   cli.Config
	quiet  bool
	addr   string
	stdout io.Writer
	stderr io.Writer
}

func main() {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	if err := a.rootCommand().Execute(); err != nil {
		cli.NewDiagnosticReporterTo(a.opts.Verbose, a.stderr).ReportError(err)
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "quickwrap",
		Short: "QuickWrap - generate injectable service wrappers for .NET types",
		Long: `QuickWrap - generate injectable service wrappers for .NET types.

QuickWrap reads a surface manifest (a reflection dump of one or more types)
and writes, for every type, an interface I<Type>Service mirroring its public
members and a class <Type>Service that forwards every call to the type.

Examples:
  quickwrap generate --manifest surface.yaml                   # Wrap every type
  quickwrap generate -m surface.yaml -t System.Net.Http.HttpClient --namespace Contoso.Services
  quickwrap inspect -m surface.yaml                            # Show the surface model
  quickwrap clean generated                                    # Remove generated files
  quickwrap serve --addr :8080                                 # Serve POST /v1/generate`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.ConfigPath, "config", "c", "", "Project configuration file (default: ./"+config.DefaultFileName+" if present)")
	flags.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "Only show errors")

	root.AddCommand(a.generateCommand(), a.inspectCommand(), a.cleanCommand(), a.serveCommand())
	return root
}

// addSelectionFlags registers the flags choosing what is wrapped and how
func (a *app) addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&a.opts.Manifest, "manifest", "m", "", "Surface manifest (YAML or JSON)")
	cmd.Flags().StringArrayVarP(&a.opts.Types, "type", "t", nil, "Type to wrap, by reflection full name (repeatable; default: every type)")
	cmd.Flags().StringVar(&a.opts.Namespace, "namespace", "", "Namespace of the generated code (default: the wrapped type's namespace)")
}

func (a *app) diagnostics() *utils.DiagnosticSystem {
	return utils.NewDiagnostics(utils.ParseDiagnosticLevel(a.opts.Verbose, a.quiet), a.stdout)
}

func (a *app) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate wrapper interfaces and implementations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := a.diagnostics()
			diagnostics.Header("generating service wrappers")
			return cli.NewGenerator(diagnostics).Run(a.opts)
		},
	}
	a.addSelectionFlags(cmd)
	cmd.Flags().StringVarP(&a.opts.OutputDir, "out", "o", "", "Output directory (default: generated)")
	cmd.Flags().StringVar(&a.opts.Docs, "docs", "", "XML documentation file of the wrapped assembly")
	cmd.Flags().BoolVar(&a.opts.Strict, "strict", false, "Fail instead of skipping members that cannot be wrapped")
	return cmd
}

func (a *app) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the surface model of the selected types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewGenerator(a.diagnostics()).Inspect(a.opts, cmd.OutOrStdout())
		},
	}
	a.addSelectionFlags(cmd)
	return cmd
}

func (a *app) cleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [directories...]",
		Short: "Delete previously generated files",
		Long: `Delete previously generated files.

Only .cs files carrying the QuickWrap generated-code header are removed.
Without arguments the configured output directory is cleaned.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := a.diagnostics()

			directories := args
			if len(directories) == 0 {
				project, err := config.Load(a.opts.ConfigPath)
				if err != nil {
					return err
				}
				directories = []string{project.OutputDir}
			}

			removed, err := cli.NewCleaner(diagnostics).CleanGeneratedFiles(directories)
			if err != nil {
				return err
			}
			diagnostics.Success("Removed %d generated files", len(removed))
			return nil
		},
	}
}

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve wrapper generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultServerConfig()
			if a.addr != "" {
				cfg.Addr = a.addr
			}
			cfg.EnableLogger = a.opts.Verbose

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.NewServer(cfg, a.diagnostics()).Start(ctx)
		},
	}
	cmd.Flags().StringVar(&a.addr, "addr", "", "Listen address (default: :$PORT or :8080)")
	return cmd
}
