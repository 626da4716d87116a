package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/medq/internal/safety"
)

// validatePayload is the structured verdict for one statement.
type validatePayload struct {
	SQL        string `json:"sql"`
	Allowed    bool   `json:"allowed"`
	Normalized string `json:"normalized,omitempty"`
}

func (p validatePayload) renderText(f *OutputFormatter) {
	if p.Allowed {
		fmt.Fprintln(f.Writer, "allowed")
		return
	}
	fmt.Fprintln(f.Writer, "rejected")
}

// NewValidateCommand creates the validate command: run a raw statement
// through the safety validator without touching the database.
func NewValidateCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <sql>",
		Short: "Check a SQL statement against the safety validator",
		Long: "Runs a statement through the same safety check the ask command\n" +
			"applies before execution. Exits 0 when the statement is allowed\n" +
			"and 1 when it is rejected.",
		Example: `  medq validate "SELECT name FROM patients"
  medq validate "DROP TABLE patients"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    root.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   root.Verbose,
			}

			sql := strings.Join(args, " ")
			d := safety.Check(sql)

			if err := out.Success(validatePayload{
				SQL:        sql,
				Allowed:    d.Allowed,
				Normalized: d.Normalized,
			}); err != nil {
				return err
			}
			if !d.Allowed {
				return NewExitError(ExitFailure, "statement rejected")
			}
			return nil
		},
	}
}
