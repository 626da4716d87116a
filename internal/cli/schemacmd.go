package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/medq/internal/schema"
)

// schemaPayload is the structured schema description.
type schemaPayload struct {
	Tables []schema.Table `json:"tables"`
	Counts schema.Counts  `json:"counts"`
}

func (p schemaPayload) renderText(f *OutputFormatter) {
	for _, t := range p.Tables {
		fmt.Fprintf(f.Writer, "%s\n", t.Name)
		for _, c := range t.Columns {
			fmt.Fprintf(f.Writer, "  %s\n", c)
		}
	}
	fmt.Fprintf(f.Writer, "seed counts: %d patients, %d doctors, %d appointments, %d medications, %d prescriptions\n",
		p.Counts.Patients, p.Counts.Doctors, p.Counts.Appointments,
		p.Counts.Medications, p.Counts.Prescriptions)
}

// NewSchemaCommand creates the schema command: print the table layout
// the translator works against.
func NewSchemaCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the dataset schema",
		Long: "Prints the tables and columns the translator knows about, plus the\n" +
			"row counts the seed command generates. Honors MEDQ_SCHEMA_DIR when\n" +
			"a CUE schema directory replaces the embedded default.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{
				Format:    root.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   root.Verbose,
			}

			desc, err := loadDescriptor(root.Config)
			if err != nil {
				out.Error(CodeSchema, err.Error(), nil)
				return WrapExitError(ExitCommandError, "load schema", err)
			}

			return out.Success(schemaPayload{
				Tables: desc.Tables(),
				Counts: desc.Counts(),
			})
		},
	}
}
