// Package output renders command results in the formats selectable with
// --output: text, json, ndjson (alias jsonl), table and yaml.
//
// The format and the optional --query (jq) and --jsonpath filters are
// injected into the context once by the root command:
//
//	ctx = output.WithFormat(ctx, format)
//	ctx = output.WithQuery(ctx, query)
//
// and commands print through a Printer:
//
//	printer := output.NewPrinter(w, output.FormatFromContext(ctx))
//	return printer.Print(ctx, report)
//
// Values choose their own non-JSON renderings by implementing TextRenderer
// (text), Tabular (table) and Streamer (ndjson). Anything else falls back to
// a generic rendering.
package output
