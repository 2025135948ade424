package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/salmonumbrella/sheetdump/internal/config"
	"github.com/salmonumbrella/sheetdump/internal/errors"
	"github.com/salmonumbrella/sheetdump/internal/logging"
	"github.com/salmonumbrella/sheetdump/internal/sheet"
	"github.com/salmonumbrella/sheetdump/internal/ui"
)

const usageLine = "usage: sheetdump <file-path>"

func newRootCmd(app *App) *cobra.Command {
	// Global flags
	var (
		debugMode    bool
		logFormat    string
		queryFlag    string
		jqFlag       string
		jsonPathFlag string
		queryFile    string
		errorFormat  string
		colorFlag    string
		quietFlag    bool
		compactJSON  bool
	)

	rootCmd := &cobra.Command{
		Use:   "sheetdump <file-path>",
		Short: "Print a spreadsheet and the type of every cell",
		Long: `Read the first sheet of a spreadsheet and print it twice: once as an
aligned table, and once cell by cell with the inferred type of each value
(int, float, string, bool, datetime or missing).

Supported files: ` + strings.Join(sheet.Extensions(), " ") + `

Examples:
  sheetdump sales.xlsx
  sheetdump -o json sales.xlsx
  sheetdump -q '.cells[] | select(.type == "missing")' sales.xlsx`,
		Args: cobra.ArbitraryArgs,
		// Errors are printed once by App.Execute, including flag parse errors
		// that happen before any hook runs.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lf, err := logging.ParseFormat(logFormat)
			if err != nil {
				return errors.WrapUserError(err, "invalid logging configuration", "Use --log-format text or --log-format json")
			}
			logging.Setup(debugMode, lf, app.Stderr)

			// Load config file (skip for config commands so a broken file can be repaired)
			var cfg *config.Config
			if !isConfigCommand(cmd) {
				loadedCfg, err := config.Load()
				if err != nil {
					return errors.WrapUserError(err, "failed to load config", "Fix or remove the file shown by 'sheetdump config path'")
				}
				cfg = loadedCfg
			} else {
				cfg = &config.Config{}
			}

			opts, err := parseGlobalOptions(cmd, cfg, app, globalFlagInput{
				queryFlag:    queryFlag,
				jqFlag:       jqFlag,
				queryFile:    queryFile,
				jsonPathFlag: jsonPathFlag,
				quietFlag:    quietFlag,
				compactJSON:  compactJSON,
				errorFormat:  errorFormat,
				colorFlag:    colorFlag,
			})
			if err != nil {
				return err
			}
			if err := validateGlobalOptions(&opts); err != nil {
				return err
			}

			// Inject parsed global options into context so subcommands can access them.
			ctx := buildRootContext(cmd.Context(), app, opts)
			if opts.queryNormalized {
				ui.FromContext(ctx).Warning("Normalized --query by removing \\! (shell escape); use ! without backslash.")
			}
			slog.Debug("global options", "format", opts.format, "query", opts.query != "", "jsonpath", opts.jsonPathRaw != "")

			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				_, _ = fmt.Fprintln(stdoutFromContext(ctx), usageLine)
				return nil
			}
			if len(args) > 1 {
				slog.Debug("ignoring extra arguments", "args", args[1:])
			}
			return runInspect(ctx, args[0])
		},
	}

	// Set version info
	rootCmd.Version = app.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("sheetdump %s (commit: %s, built: %s)\n", app.Version, app.Commit, app.BuildTime))

	// Global flags
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text|json|ndjson|jsonl|table|yaml")
	// Alias --format to --output
	rootCmd.PersistentFlags().String("format", "text", "Alias for --output")
	_ = rootCmd.PersistentFlags().MarkHidden("format")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Shorthand for --output json")
	rootCmd.PersistentFlags().StringVarP(&queryFlag, "query", "q", "", "JQ expression to filter structured output (prefix @ to read a file)")
	rootCmd.PersistentFlags().StringVar(&jqFlag, "jq", "", "Alias for --query")
	_ = rootCmd.PersistentFlags().MarkHidden("jq")
	rootCmd.PersistentFlags().StringVar(&queryFile, "query-file", "", "Read JQ expression from file ('-' for stdin)")
	rootCmd.PersistentFlags().StringVar(&jsonPathFlag, "jsonpath", "", "Extract a value using JSONPath (e.g. $.cells[0].value)")
	rootCmd.PersistentFlags().BoolVar(&compactJSON, "compact-json", false, "Output compact JSON (single-line) instead of pretty JSON")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log record format on stderr (text|json)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress warnings")
	rootCmd.PersistentFlags().StringVar(&errorFormat, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "", "Color mode for warnings (auto|always|never)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WrapUserError(err, "invalid flag", fmt.Sprintf("Run '%s --help' for usage; use ./<file> for paths starting with '-'", cmd.CommandPath()))
	})

	flagAlias(rootCmd.PersistentFlags(), "output", "out")
	flagAlias(rootCmd.PersistentFlags(), "query-file", "qf")
	flagAlias(rootCmd.PersistentFlags(), "compact-json", "cj")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
