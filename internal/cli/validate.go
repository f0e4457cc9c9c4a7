package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/provtools/prov2ld/internal/convert"
	"github.com/provtools/prov2ld/internal/prov"
	"github.com/provtools/prov2ld/internal/schema"
)

// Violation is one finding from the validate command.
type Violation struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// ValidationResult is the JSON payload for validate.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Violations []Violation       `json:"violations,omitempty"`
	Warnings   []convert.Warning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a PROV-JSON document without writing output",
		Long: `Validate a PROV-JSON document without writing output.

Checks the document shape against the PROV-JSON schema, then runs a dry
conversion to surface prefix resolution failures and recoverable
attribute problems.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, input string, cmd *cobra.Command) error {
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

	result := ValidationResult{Valid: true}

	for _, v := range schema.Validate(input, data) {
		result.Violations = append(result.Violations, Violation{
			Code:    ErrCodeSchema,
			Path:    v.Path,
			Message: v.Message,
		})
	}

	// Dry conversion only when the shape held up; a rejected shape makes
	// decode findings redundant.
	if len(result.Violations) == 0 {
		doc, err := prov.DecodeBytes(data)
		if err != nil {
			result.Violations = append(result.Violations, Violation{
				Code:    ErrCodeParse,
				Message: err.Error(),
			})
		} else {
			converted, err := convert.Convert(doc)
			if err != nil {
				result.Violations = append(result.Violations, Violation{
					Code:    ErrCodePrefix,
					Message: err.Error(),
				})
			} else {
				result.Warnings = converted.Warnings
			}
		}
	}

	result.Valid = len(result.Violations) == 0

	if rootOpts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		printValidationText(formatter, input, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "document invalid")
	}
	return nil
}

func printValidationText(formatter *OutputFormatter, input string, result ValidationResult) {
	if result.Valid {
		fmt.Fprintf(formatter.Writer, "%s: valid", input)
		if n := len(result.Warnings); n > 0 {
			fmt.Fprintf(formatter.Writer, " (%d warning(s))", n)
		}
		fmt.Fprintln(formatter.Writer)
	} else {
		fmt.Fprintf(formatter.Writer, "%s: invalid\n", input)
		for _, v := range result.Violations {
			if v.Path != "" {
				fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", v.Code, v.Path, v.Message)
			} else {
				fmt.Fprintf(formatter.Writer, "  [%s] %s\n", v.Code, v.Message)
			}
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %s\n", w)
	}
}
