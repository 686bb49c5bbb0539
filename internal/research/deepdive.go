package research

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/snapshot/internal/extract"
	"github.com/sells-group/snapshot/internal/model"
	"github.com/sells-group/snapshot/internal/prompt"
	"github.com/sells-group/snapshot/internal/session"
)

var (
	// ErrNoReport means a deep dive was requested before the initial flow
	// produced a report.
	ErrNoReport = eris.New("research: no report to enrich")
	// ErrDiveInFlight means a dive for the same section is already outstanding.
	ErrDiveInFlight = eris.New("research: deep dive already in flight")
)

// DeepDive enriches one section of the current report with a single provider
// call. For the competitors section, selected names the competitors to
// research; when empty, the pre-selected direct competitors are used. On any
// failure the report and ledger are left untouched and the section stays
// re-triggerable.
func (o *Orchestrator) DeepDive(ctx context.Context, section session.Section, selected []string) (*model.Report, error) {
	report := o.session.Report()
	if report == nil {
		return nil, ErrNoReport
	}

	if !o.session.Begin(section) {
		return nil, eris.Wrap(ErrDiveInFlight, string(section))
	}
	ok := false
	defer func() { o.session.End(section, ok) }()

	p, src, err := o.divePrompt(section, report, selected)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(
		zap.String("company", report.Name),
		zap.String("section", string(section)),
	)
	log.Info("research: deep dive", zap.String("provider", o.primary.Name()))

	text, err := o.primary.Send(ctx, p)
	if err != nil {
		log.Warn("research: deep dive failed", zap.Error(err))
		return nil, eris.Wrapf(err, "research: %s deep dive", section)
	}

	raw, err := extract.Object(text)
	if err != nil {
		log.Warn("research: deep dive response unparsable", zap.Error(err))
		return nil, eris.Wrapf(err, "research: %s deep dive", section)
	}

	if err := o.session.MergeFragment(raw); err != nil {
		log.Warn("research: deep dive fragment rejected", zap.Error(err))
		return nil, eris.Wrapf(err, "research: %s deep dive", section)
	}

	o.session.AddSource(src)
	ok = true
	return o.session.Report(), nil
}

// divePrompt builds the section prompt and its ledger entry.
func (o *Orchestrator) divePrompt(section session.Section, report *model.Report, selected []string) (string, model.Source, error) {
	switch section {
	case session.SectionCompetitors:
		names := selected
		if len(names) == 0 {
			names = o.session.SelectedCompetitors()
		}
		if len(names) == 0 {
			return "", model.Source{}, eris.New("research: no competitors selected")
		}
		return prompt.Competitors(names), model.Source{
			Type:       model.SourceWeb,
			Model:      "Web Search",
			Title:      "Competitor research",
			DataPoints: names,
		}, nil

	case session.SectionFunding:
		return prompt.Funding(report.Name), model.Source{
			Type:       model.SourceWeb,
			Model:      "Web Search",
			Title:      "Funding research",
			DataPoints: []string{"Rounds", "Investors", "Valuations"},
		}, nil

	case session.SectionTeam:
		return prompt.Team(report.Name), model.Source{
			Type:       model.SourceWeb,
			Model:      "Web Search",
			Title:      "Team research",
			DataPoints: []string{"Executives", "Board"},
		}, nil
	}
	return "", model.Source{}, eris.Errorf("research: unknown section %q", section)
}
