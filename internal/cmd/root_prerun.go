package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salmonumbrella/sheetdump/internal/cmdutil"
	"github.com/salmonumbrella/sheetdump/internal/config"
	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
	"github.com/salmonumbrella/sheetdump/internal/iocontext"
	"github.com/salmonumbrella/sheetdump/internal/output"
	"github.com/salmonumbrella/sheetdump/internal/ui"
	"github.com/salmonumbrella/sheetdump/internal/validate"
)

// EnvOutput sets the default output format when --output is not given.
const EnvOutput = "SHEETDUMP_OUTPUT"

var colorModes = []string{"auto", "always", "never"}

type globalFlagInput struct {
	queryFlag    string
	jqFlag       string
	queryFile    string
	jsonPathFlag string
	quietFlag    bool
	compactJSON  bool
	errorFormat  string
	colorFlag    string
}

type globalOptions struct {
	format          output.Format
	query           string
	queryNormalized bool
	jsonPathRaw     string
	quiet           bool
	compactJSON     bool
	errorFormat     string
	color           string

	queryFlagSet bool
	jqFlagSet    bool
}

func parseGlobalOptions(cmd *cobra.Command, cfg *config.Config, app *App, flags globalFlagInput) (globalOptions, error) {
	opts := globalOptions{
		quiet:       flags.quietFlag,
		compactJSON: flags.compactJSON,
		errorFormat: flags.errorFormat,

		queryFlagSet: strings.TrimSpace(flags.queryFlag) != "",
		jqFlagSet:    strings.TrimSpace(flags.jqFlag) != "",
	}

	outputFlagSet := commandFlagChanged(cmd, "output") || commandFlagChanged(cmd, "out")
	formatStr, _ := cmd.Flags().GetString("output")
	jsonFlag, _ := cmd.Flags().GetBool("json")
	if jsonFlag {
		formatStr = "json"
	} else if commandFlagChanged(cmd, "format") {
		formatStr, _ = cmd.Flags().GetString("format")
	} else if !outputFlagSet && strings.TrimSpace(os.Getenv(EnvOutput)) != "" {
		formatStr = os.Getenv(EnvOutput)
	} else if !outputFlagSet && cfg.GetOutput() != "" {
		formatStr = cfg.GetOutput()
	}

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return globalOptions{}, clierrors.WrapUserError(err, "invalid output format", "Use one of: "+strings.Join(output.Formats, ", "))
	}
	opts.format = format

	// Piped structured output stays machine-clean.
	if !cmd.Flags().Changed("quiet") && !isTerminal(app.Stdout) {
		switch opts.format {
		case output.FormatJSON, output.FormatNDJSON, output.FormatYAML:
			opts.quiet = true
		}
	}

	inline := flags.queryFlag
	if inline == "" {
		inline = flags.jqFlag
	}
	if opts.queryFlagSet && opts.jqFlagSet {
		return globalOptions{}, errOnlyOne("--query", "--jq")
	}
	query, err := cmdutil.ResolveQuery(app.Stdin, inline, flags.queryFile)
	if err != nil {
		return globalOptions{}, clierrors.WrapUserError(err, "invalid query input", "Pass the expression inline with --query or from a file with --query-file")
	}
	opts.query, opts.queryNormalized = output.NormalizeQuery(query)
	opts.jsonPathRaw = strings.TrimSpace(flags.jsonPathFlag)

	opts.color = flags.colorFlag
	if strings.TrimSpace(opts.color) == "" {
		opts.color = cfg.GetColor()
	}

	return opts, nil
}

func validateGlobalOptions(opts *globalOptions) error {
	if opts.query != "" && opts.jsonPathRaw != "" {
		return errOnlyOne("--query/--jq/--query-file", "--jsonpath")
	}
	if opts.query != "" {
		if err := output.CompileQuery(opts.query); err != nil {
			return clierrors.WrapUserError(err, "invalid --query", "Check the jq expression syntax")
		}
	}
	if strings.TrimSpace(opts.color) != "" {
		if err := validate.OneOf("color", opts.color, colorModes...); err != nil {
			return clierrors.WrapUserError(err, fmt.Sprintf("invalid color mode %q", opts.color), "Use one of: auto, always, never")
		}
	}
	return validateErrorFormat(opts.errorFormat)
}

func buildRootContext(ctx context.Context, app *App, opts globalOptions) context.Context {
	ctx = iocontext.WithStreams(ctx, iocontext.Streams{In: app.Stdin, Out: app.Stdout, Err: app.Stderr})
	ctx = output.WithFormat(ctx, opts.format)
	ctx = output.WithQuery(ctx, opts.query)
	ctx = output.WithJSONPath(ctx, opts.jsonPathRaw)
	ctx = output.WithCompactJSON(ctx, opts.compactJSON)
	ctx = WithErrorFormat(ctx, opts.errorFormat)

	u := ui.New(app.Stderr, ui.ParseColorMode(opts.color))
	u.SetQuiet(opts.quiet)
	ctx = ui.WithUI(ctx, u)
	return ctx
}

func errOnlyOne(left, right string) error {
	return clierrors.NewUserError(fmt.Sprintf("use only one of %s or %s", left, right), "")
}

func commandFlagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}

	for current := cmd; current != nil; current = current.Parent() {
		if flag := current.Flags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
		if flag := current.PersistentFlags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
	}
	return false
}
