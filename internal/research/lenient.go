package research

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/snapshot/internal/extract"
	"github.com/sells-group/snapshot/internal/model"
	"github.com/sells-group/snapshot/internal/prompt"
)

// runLenient is the single-stage flow: one generation call, and on any
// failure a deterministic synthetic report keyed on the company name, so the
// caller never sees an empty or error state.
func (o *Orchestrator) runLenient(ctx context.Context, company string) (*model.Report, error) {
	log := zap.L().With(zap.String("company", company))

	o.stage(StageSearching)

	text, err := o.primary.Send(ctx, prompt.Overview(company))
	if err == nil {
		var report model.Report
		err = extract.Into(text, &report)
		if err == nil {
			o.stage(StageDone)
			o.finish(&report, model.Source{
				Type:  model.SourceAI,
				Model: "Claude Sonnet 4",
				Title: "Initial analysis of " + company,
				DataPoints: []string{
					"Company overview", "Market segments", "Competitors",
					"Market map", "Value chain",
				},
			})
			return o.session.Report(), nil
		}
	}

	log.Warn("research: falling back to synthetic data", zap.Error(err))

	mock := MockReport(company)
	o.stage(StageDone)
	o.session.SetReport(mock)

	selections := make(map[int]bool, len(mock.TopCompetitors))
	for i, c := range mock.TopCompetitors {
		selections[i] = c.Type == model.CompetitorDirect
	}
	o.session.SetSelections(selections)

	// No ledger entry: nothing external produced this data.
	return o.session.Report(), nil
}
