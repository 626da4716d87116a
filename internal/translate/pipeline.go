package translate

import (
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/roach88/medq/internal/nlq"
	"github.com/roach88/medq/internal/rules"
	"github.com/roach88/medq/internal/schema"
)

// Pipeline translates free-text questions into parameterized SQL.
//
// Stateless after construction: the registry and schema are read-only,
// so a single Pipeline is safe for concurrent use. The clock is
// injectable to make date-window rendering deterministic in tests.
type Pipeline struct {
	reg    *rules.Registry
	schema *schema.Descriptor
	now    func() time.Time
	log    zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock overrides the wall clock used to anchor date windows.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// New builds a pipeline over a registry and schema descriptor.
func New(reg *rules.Registry, desc *schema.Descriptor, opts ...Option) *Pipeline {
	p := &Pipeline{
		reg:    reg,
		schema: desc,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// exactCensus maps fully-normalized questions to census rules.
// Matching is whole-string equality, not substring.
var exactCensus = map[string]string{
	"how many patients do we have?":                 rules.RulePatientCensus,
	"how many doctors are there?":                   rules.RuleDoctorCensus,
	"how many appointments are there?":              rules.RuleAppointmentCensus,
	"how many doctors are there in each specialty?": rules.RuleSpecialtyCensus,
	"count total number of appointments":            rules.RuleAppointmentCensus,
	"count total number of patients":                rules.RulePatientCensus,
}

// exactAnalytic is the second exact-match set for a few literal
// questions with dedicated analytic rules.
var exactAnalytic = map[string]string{
	"show all patients":                           rules.RuleAllPatients,
	"list all doctors and their specialties":      rules.RuleAllDoctors,
	"show doctors who have the most appointments": rules.RuleDoctorsMostAppointments,
}

// bloodPatterns are tried in order; the first match extracts the code.
var bloodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:blood\s+type|type)\s+((?:ab|a|b|o)[+-])`),
	regexp.MustCompile(`(?:with|having)\s+((?:ab|a|b|o)[+-])`),
	regexp.MustCompile(`list patients?\s+with\s+blood\s+type\s+((?:ab|a|b|o)[+-])`),
}

// windowPattern extracts an optional count and a day/week/month unit.
// Only consulted when the question mentions appointments.
var windowPattern = regexp.MustCompile(`(?:in |from |during |the |last |past |recent )?(\d+|a|the|this)?\s*(day|week|month)s?\b`)

// Translate converts a question to a rendered query.
//
// Candidate strategies run in a fixed priority order; the first one that
// yields a non-empty rendering wins. Extraction and rendering failures
// inside a strategy are absorbed: the rule is treated as a non-match and
// evaluation continues. Only "nothing matched at all" reaches the caller,
// as the NoMatch value.
func (p *Pipeline) Translate(raw string) Result {
	text := nlq.Normalize(raw).String()
	log := p.log.With().Str("question", text).Logger()

	// 1. Exact census phrases.
	if id, ok := exactCensus[text]; ok {
		if res, ok := p.renderByID(id, rules.Params{}); ok {
			log.Debug().Str("rule", id).Msg("exact census match")
			return res
		}
	}

	// 2. Blood-type patterns.
	for _, re := range bloodPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			code := strings.ToUpper(m[1])
			if res, ok := p.renderByID(rules.RulePatientsByBlood, rules.Params{Code: code}); ok {
				log.Debug().Str("blood_type", code).Msg("blood-type match")
				return res
			}
		}
	}

	// 3. Time-window rules, gated on the word "appointment".
	if strings.Contains(text, "appointment") {
		if m := windowPattern.FindStringSubmatch(text); m != nil {
			params, err := rules.WindowParams(p.now(), m[1], m[2])
			if err == nil {
				if res, ok := p.renderByID(rules.RuleRecentAppointments, params); ok {
					log.Debug().Int("count", params.Count).Str("unit", params.Unit).Msg("time-window match")
					return res
				}
			}
		}
	}

	// 4. Second exact-match set.
	if id, ok := exactAnalytic[text]; ok {
		if res, ok := p.renderByID(id, rules.Params{}); ok {
			log.Debug().Str("rule", id).Msg("exact analytic match")
			return res
		}
	}

	// 5. Registry scan in registration order. The earliest-registered
	// rule whose pattern matches and whose extraction and rendering
	// both succeed wins; later rules are never attempted.
	for _, rule := range p.reg.Rules() {
		m := rule.Match(text)
		if m == nil {
			continue
		}
		params, err := rule.ExtractParams(p.now(), text, m)
		if err != nil {
			log.Debug().Str("rule", rule.ID).Err(err).Msg("extraction failed, skipping rule")
			continue
		}
		q, err := rule.Render(params)
		if err != nil {
			log.Debug().Str("rule", rule.ID).Err(err).Msg("render failed, skipping rule")
			continue
		}
		log.Debug().Str("rule", rule.ID).Msg("registry match")
		return Result{RuleID: rule.ID, SQL: q.SQL, Args: q.Args, Matched: true}
	}

	// 6. Keyword fallback, in patient > doctor > appointment priority.
	if res, ok := p.keywordFallback(text); ok {
		log.Debug().Str("rule", res.RuleID).Msg("keyword fallback")
		return res
	}

	// 7. Entity-driven generic builder.
	ents := nlq.Extract(raw)
	if res, ok := p.buildGeneric(text, ents); ok {
		log.Debug().Msg("generic builder")
		return res
	}

	// 8. Nothing rendered.
	log.Debug().Msg("no match")
	return NoMatch
}

// keywordFallback renders an entity's default listing when the question
// contains a bare table keyword. Appointments get a 7-day window.
func (p *Pipeline) keywordFallback(text string) (Result, bool) {
	switch {
	case strings.Contains(text, "patient"):
		return p.renderByID(rules.RuleAllPatients, rules.Params{})
	case strings.Contains(text, "doctor"):
		return p.renderByID(rules.RuleAllDoctors, rules.Params{})
	case strings.Contains(text, "appointment"):
		params, err := rules.WindowParams(p.now(), "7", "days")
		if err != nil {
			return NoMatch, false
		}
		return p.renderByID(rules.RuleRecentAppointments, params)
	}
	return NoMatch, false
}

// renderByID renders a registered rule with the given parameters.
func (p *Pipeline) renderByID(id string, params rules.Params) (Result, bool) {
	rule, ok := p.reg.ByID(id)
	if !ok {
		return NoMatch, false
	}
	q, err := rule.Render(params)
	if err != nil {
		p.log.Debug().Str("rule", id).Err(err).Msg("render failed")
		return NoMatch, false
	}
	return Result{RuleID: id, SQL: q.SQL, Args: q.Args, Matched: true}, true
}
