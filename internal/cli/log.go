package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/provtools/prov2ld/internal/journal"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	JournalPath string
	Limit       int
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{}

	cmd := &cobra.Command{
		Use:           "log",
		Short:         "List recorded conversion runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.JournalPath, "journal", "prov2ld.db", "SQLite journal to read")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")

	return cmd
}

func runLog(rootOpts *RootOptions, opts *LogOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	j, err := journal.Open(opts.JournalPath)
	if err != nil {
		formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	runs, err := j.List(cmd.Context(), opts.Limit)
	if err != nil {
		formatter.Error(ErrCodeJournal, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(runsPayload(runs))
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tINPUT\tOUTPUT\tBYTES\tWARNINGS\tVERSION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.CreatedAt.Format(time.RFC3339),
			run.InputPath,
			run.OutputPath,
			run.OutputBytes,
			run.WarningCount,
			run.ToolVersion,
		)
	}
	return w.Flush()
}

// runEntry is the JSON shape for one journaled run.
type runEntry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	InputPath    string    `json:"input_path"`
	InputSHA256  string    `json:"input_sha256"`
	OutputPath   string    `json:"output_path"`
	OutputBytes  int64     `json:"output_bytes"`
	WarningCount int       `json:"warning_count"`
	ToolVersion  string    `json:"tool_version"`
}

func runsPayload(runs []journal.Run) []runEntry {
	entries := make([]runEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, runEntry{
			ID:           run.ID,
			CreatedAt:    run.CreatedAt,
			InputPath:    run.InputPath,
			InputSHA256:  run.InputSHA256,
			OutputPath:   run.OutputPath,
			OutputBytes:  run.OutputBytes,
			WarningCount: run.WarningCount,
			ToolVersion:  run.ToolVersion,
		})
	}
	return entries
}
