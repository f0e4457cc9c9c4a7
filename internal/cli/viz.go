package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provtools/prov2ld/internal/viz"
)

// VizOptions holds flags for the viz command.
type VizOptions struct {
	StylePath string
	Direction string
	ShowAttrs bool
	RenderFmt string
}

// NewVizCommand creates the viz command.
func NewVizCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VizOptions{}

	cmd := &cobra.Command{
		Use:   "viz <input> <output.dot>",
		Short: "Render a PROV-JSONLD document as a Graphviz graph",
		Long: `Render a PROV-JSONLD document as a Graphviz graph.

Reads PROV-JSONLD from <input> and writes DOT source to <output.dot>.
With --render, the graphviz dot binary (when installed) additionally
produces an image next to the DOT file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViz(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StylePath, "style", "", "YAML style sheet merged over the default styles")
	cmd.Flags().StringVar(&opts.Direction, "direction", "LR", "graph rankdir (LR|TB|RL|BT)")
	cmd.Flags().BoolVar(&opts.ShowAttrs, "show-attr", false, "include element attributes in node labels")
	cmd.Flags().StringVar(&opts.RenderFmt, "render", "", "also render an image (png|pdf|svg)")

	return cmd
}

func runViz(rootOpts *RootOptions, opts *VizOptions, input, output string, cmd *cobra.Command) error {
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

	renderer := viz.Renderer{
		Direction:      opts.Direction,
		ShowAttributes: opts.ShowAttrs,
	}
	if opts.StylePath != "" {
		styles, err := viz.LoadStyles(opts.StylePath)
		if err != nil {
			formatter.Error(ErrCodeViz, err.Error(), nil)
			return WrapExitError(ExitCommandError, "load styles", err)
		}
		renderer.Styles = styles
	}

	dot, err := renderer.Render(data)
	if err != nil {
		formatter.Error(ErrCodeViz, err.Error(), nil)
		return WrapExitError(ExitCommandError, "render graph", err)
	}

	if err := WriteOutput(output, []byte(dot), cmd.OutOrStdout()); err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write output", err)
	}
	formatter.VerboseLog("Wrote DOT graph to %s", output)

	if opts.RenderFmt != "" {
		renderImage(formatter, opts, output, dot, cmd)
	}
	return nil
}

// renderImage shells out to graphviz; a missing binary is a warning, not
// a failure, so the DOT output still lands.
func renderImage(formatter *OutputFormatter, opts *VizOptions, output, dot string, cmd *cobra.Command) {
	if output == "-" {
		fmt.Fprintln(formatter.GetErrWriter(), "warning: --render needs a file output, skipping image")
		return
	}
	if _, err := exec.LookPath("dot"); err != nil {
		fmt.Fprintln(formatter.GetErrWriter(), "warning: graphviz dot binary not found, skipping image")
		return
	}

	imagePath := strings.TrimSuffix(output, ".dot") + "." + opts.RenderFmt
	f, err := os.Create(imagePath)
	if err != nil {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: create %s: %v\n", imagePath, err)
		return
	}
	defer f.Close()

	if err := viz.RenderImage(cmd.Context(), dot, opts.RenderFmt, f); err != nil {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %v\n", err)
		return
	}
	formatter.VerboseLog("Rendered image to %s", imagePath)
}
