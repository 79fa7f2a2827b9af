// vimdoc2html converts Vim/Nvim help files to HTML fragments.
//
// With file or directory arguments it converts each discovered help file
// in place, writing the output next to the input. With no arguments it
// reads one document from stdin and writes the result to stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"vimdoc2html/internal/ast"
	"vimdoc2html/internal/config"
	"vimdoc2html/internal/convert"
	"vimdoc2html/internal/grammar"
	"vimdoc2html/internal/parser"
	"vimdoc2html/internal/render"
)

var (
	verbose     bool
	extensions  []string
	recursive   bool
	debugOutput bool
	oldMode     bool
	jobs        int
	configPath  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vimdoc2html [paths...]",
	Short: "Convert Vim help files to HTML",
	Long: `vimdoc2html parses Vim/Nvim help files with the vimdoc grammar and
renders each one as an HTML fragment.

Arguments may be files or directories; directories contribute files
matching the configured extensions. Without arguments the document is
read from stdin and the result written to stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConvert,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringSliceVar(&extensions, "ext", nil, "file extensions converted when walking directories")
	pf.BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	pf.BoolVar(&debugOutput, "debug-output", false, "emit the structural node dump instead of HTML")
	pf.BoolVar(&oldMode, "old", false, "render in legacy mode for pre-0.10 style help pages")
	pf.IntVarP(&jobs, "jobs", "j", 0, "max concurrent conversions (0 = one per CPU)")
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
}

// loadSettings merges the config file with any flags the user set.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extensions = nil
		for _, ext := range extensions {
			cfg.Extensions = append(cfg.Extensions, strings.TrimPrefix(ext, "."))
		}
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("debug-output") {
		cfg.DebugOutput = debugOutput
	}
	if flags.Changed("old") {
		cfg.Old = oldMode
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}
	return cfg, nil
}

// newConvertFunc builds the per-file conversion used by the batch runner
// and the watcher.
func newConvertFunc(cfg *config.Config) convert.ConvertFunc {
	lang := grammar.Language()
	return func(ctx context.Context, name string, src []byte) (string, error) {
		p, err := parser.LoadBytes(ctx, src, lang)
		if err != nil {
			return "", err
		}
		defer p.Close()
		return renderDocument(p, cfg, name), nil
	}
}

// renderDocument produces the output for one parsed document. The strict
// build runs first so malformed nodes surface in the logs; rendering
// itself never fails.
func renderDocument(p *parser.Parser, cfg *config.Config, name string) string {
	if cfg.DebugOutput {
		return p.DebugString()
	}
	if _, err := p.Parse(ast.WithDiagnostics(ast.NewLogSink(logger))); err != nil {
		logger.Warn("document does not build strictly",
			zap.String("file", name), zap.Error(err))
	}
	return p.HTMLString(render.HTMLOptions{Old: cfg.Old})
}

func newRunner(cfg *config.Config) *convert.Runner {
	outExt := ".html"
	if cfg.DebugOutput {
		outExt = ".txt.debug"
	}
	return &convert.Runner{
		Convert:    newConvertFunc(cfg),
		Extensions: cfg.Extensions,
		Recursive:  cfg.Recursive,
		OutExt:     outExt,
		Jobs:       cfg.Jobs,
		Logger:     logger,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		out, err := convertStdin(cmd, cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	return newRunner(cfg).Run(cmd.Context(), args)
}

func convertStdin(cmd *cobra.Command, cfg *config.Config) (string, error) {
	p, err := parser.Load(cmd.Context(), cmd.InOrStdin(), grammar.Language())
	if err != nil {
		return "", err
	}
	defer p.Close()
	return renderDocument(p, cfg, "stdin"), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
