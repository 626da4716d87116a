package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/medq/internal/rules"
	"github.com/roach88/medq/internal/safety"
	"github.com/roach88/medq/internal/schema"
	"github.com/roach88/medq/internal/store"
	"github.com/roach88/medq/internal/translate"
)

// queryTimeout bounds a single translated query, retries included.
const queryTimeout = 10 * time.Second

// AskOptions holds flags for the ask command.
type AskOptions struct {
	DBPath   string
	SQLOnly  bool
	SafeMode bool
}

// askPayload is the structured result of one question.
type askPayload struct {
	Question string          `json:"question"`
	Rule     string          `json:"rule"`
	SQL      string          `json:"sql"`
	Args     []any           `json:"args,omitempty"`
	Result   store.ResultSet `json:"result"`
}

// renderText prints the query and, when it was executed, the rows.
func (p askPayload) renderText(f *OutputFormatter) {
	f.VerboseLog("rule: %s", p.Rule)
	if p.Result.Columns == nil {
		fmt.Fprintln(f.Writer, p.SQL)
		if len(p.Args) > 0 {
			fmt.Fprintf(f.Writer, "-- args: %v\n", p.Args)
		}
		return
	}
	f.writeTable(p.Result)
}

// NewAskCommand creates the ask command: translate a question, validate
// the rendering, and run it.
func NewAskCommand(root *RootOptions) *cobra.Command {
	opts := &AskOptions{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Translate a question to SQL and run it",
		Long: "Translates a plain-English question into a read-only SQL query,\n" +
			"checks it against the safety validator, and executes it against\n" +
			"the medical database.\n\n" +
			"With --sql-only the query is printed without being executed.",
		Example: `  medq ask "Show all patients older than 60"
  medq ask --sql-only "How many doctors are there?"
  medq ask --format json "List patients with blood type O-"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, root, opts, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "database path (default $MEDQ_DB_PATH or medq.db)")
	cmd.Flags().BoolVar(&opts.SQLOnly, "sql-only", false, "print the translated SQL without executing it")
	cmd.Flags().BoolVar(&opts.SafeMode, "safe", false, "treat missing tables as empty results")

	return cmd
}

func runAsk(cmd *cobra.Command, root *RootOptions, opts *AskOptions, question string) error {
	out := &OutputFormatter{
		Format:    root.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   root.Verbose,
	}
	traceID := newTraceID()
	log := root.Logger.With().Str("trace_id", traceID).Logger()

	desc, err := loadDescriptor(root.Config)
	if err != nil {
		out.Error(CodeSchema, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load schema", err)
	}

	reg, err := rules.Builtin()
	if err != nil {
		return WrapExitError(ExitCommandError, "build rules", err)
	}
	pipeline := translate.New(reg, desc, translate.WithLogger(log))

	res := pipeline.Translate(question)
	if !res.Matched {
		out.Error(CodeNoTranslation, "could not translate question", question)
		return NewExitError(ExitFailure, "no rule matched the question")
	}
	log.Debug().Str("rule", res.RuleID).Msg("translated")

	if d := safety.Check(res.SQL); !d.Allowed {
		out.Error(CodeUnsafe, "translated query failed the safety check", nil)
		return NewExitError(ExitFailure, "unsafe statement")
	}

	if opts.SQLOnly {
		return out.SuccessTraced(traceID, askPayload{
			Question: question,
			Rule:     res.RuleID,
			SQL:      res.SQL,
			Args:     res.Args,
		})
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = root.Config.DBPath
	}
	s, err := store.Open(dbPath)
	if err != nil {
		out.Error(CodeDatabase, store.UserMessage(err), nil)
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer s.Close()

	adapterOpts := []store.AdapterOption{store.WithLogger(log)}
	if opts.SafeMode {
		adapterOpts = append(adapterOpts, store.WithSafeMode())
	}
	adapter := store.NewAdapter(s.DB(), adapterOpts...)

	ctx, cancel := context.WithTimeout(cmd.Context(), queryTimeout)
	defer cancel()

	rs, err := adapter.Execute(ctx, res.SQL, res.Args...)
	if err != nil {
		out.Error(CodeDatabase, store.UserMessage(err), nil)
		return WrapExitError(ExitFailure, "execute query", err)
	}

	out.VerboseLog("sql: %s", res.SQL)
	return out.SuccessTraced(traceID, askPayload{
		Question: question,
		Rule:     res.RuleID,
		SQL:      res.SQL,
		Args:     res.Args,
		Result:   rs,
	})
}

// loadDescriptor picks the schema source: a CUE directory when
// configured, otherwise the embedded default.
func loadDescriptor(cfg Config) (*schema.Descriptor, error) {
	if cfg.SchemaDir != "" {
		return schema.LoadDir(cfg.SchemaDir)
	}
	return schema.Default(), nil
}

// newTraceID mints a sortable per-question token. Falls back to a
// random UUID if the clock misbehaves.
func newTraceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
