package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provtools/prov2ld/internal/convert"
	"github.com/provtools/prov2ld/internal/journal"
	"github.com/provtools/prov2ld/internal/jsonld"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/schema"
	"github.com/provtools/prov2ld/internal/vocab"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	Indent      bool
	JournalPath string
	ContextURL  string
}

// ConvertResult is the JSON payload for a successful conversion.
type ConvertResult struct {
	Output      string            `json:"output"`
	OutputBytes int               `json:"output_bytes"`
	Warnings    []convert.Warning `json:"warnings,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a PROV-JSON document to PROV-JSONLD",
		Long: `Convert a PROV-JSON document to PROV-JSONLD.

Reads PROV-JSON from <input>, validates its shape, and writes the
PROV-JSONLD rendition to <output>. Use "-" for stdin or stdout.
Recoverable problems print as warnings on stderr; the exit code stays 0.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Indent, "indent", false, "pretty-print the output")
	cmd.Flags().StringVar(&opts.JournalPath, "journal", "", "append a run record to this SQLite journal")
	cmd.Flags().StringVar(&opts.ContextURL, "context", vocab.ContextURL, "@context URL to embed in the output")

	return cmd
}

func runConvert(rootOpts *RootOptions, opts *ConvertOptions, input, output string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	data, err := ReadInput(input, cmd.InOrStdin())
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read input", err)
	}
	formatter.VerboseLog("Read %d bytes from %s", len(data), input)

	if violations := schema.Validate(input, data); len(violations) > 0 {
		formatter.Error(ErrCodeSchema, violations[0].String(), violations)
		return NewExitError(ExitCommandError, "document shape invalid")
	}

	doc, err := prov.DecodeBytes(data)
	if err != nil {
		formatter.Error(ErrCodeParse, err.Error(), nil)
		return WrapExitError(ExitCommandError, "parse input", err)
	}

	result, err := convert.ConvertWith(doc, convert.Options{ContextURL: opts.ContextURL})
	if err != nil {
		formatter.Error(ErrCodePrefix, err.Error(), nil)
		return WrapExitError(ExitCommandError, "convert", err)
	}

	var out []byte
	if opts.Indent {
		out, err = jsonld.MarshalIndent(result.Document, "", "  ")
	} else {
		out, err = jsonld.Marshal(result.Document)
	}
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "encode output", err)
	}
	out = append(out, '\n')

	if err := WriteOutput(output, out, cmd.OutOrStdout()); err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write output", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %s\n", w)
	}

	if opts.JournalPath != "" {
		if err := journalRun(cmd, opts, input, output, data, len(out), len(result.Warnings)); err != nil {
			formatter.Error(ErrCodeJournal, err.Error(), nil)
			return WrapExitError(ExitCommandError, "journal run", err)
		}
		formatter.VerboseLog("Journaled run to %s", opts.JournalPath)
	}

	if rootOpts.Format == "json" && output != "-" {
		return formatter.Success(ConvertResult{
			Output:      output,
			OutputBytes: len(out),
			Warnings:    result.Warnings,
		})
	}
	return nil
}

func journalRun(cmd *cobra.Command, opts *ConvertOptions, input, output string, data []byte, outputBytes, warningCount int) error {
	j, err := journal.Open(opts.JournalPath)
	if err != nil {
		return err
	}
	defer j.Close()

	return j.Append(cmd.Context(), journal.Run{
		ID:           journal.NewRunID(),
		InputPath:    input,
		InputSHA256:  inputDigest(data),
		OutputPath:   output,
		OutputBytes:  int64(outputBytes),
		WarningCount: warningCount,
		ToolVersion:  convert.Version,
	})
}
