package viz

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// RenderImage pipes DOT source through the graphviz dot binary and writes
// the rendered image to out. The binary must be on PATH.
func RenderImage(ctx context.Context, dot, format string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = strings.NewReader(dot)
	cmd.Stdout = out

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("dot -T%s: %v: %s", format, err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("dot -T%s: %w", format, err)
	}
	return nil
}
