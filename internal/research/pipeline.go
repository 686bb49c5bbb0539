// Package research runs the multi-stage report pipeline: an initial
// generate → validate → refine flow across two providers, plus on-demand
// deep dives that enrich single sections of the report.
package research

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/snapshot/internal/extract"
	"github.com/sells-group/snapshot/internal/gateway"
	"github.com/sells-group/snapshot/internal/model"
	"github.com/sells-group/snapshot/internal/prompt"
	"github.com/sells-group/snapshot/internal/session"
)

// Orchestrator sequences provider calls and owns prompt construction and
// per-stage error containment. It writes results into the session it was
// created with.
type Orchestrator struct {
	primary   gateway.Provider // generation and refinement
	validator gateway.Provider // independent cross-validation
	session   *session.Session
	onStage   func(Stage)
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithStageCallback registers a callback invoked on every stage transition of
// the initial flow, for progress display.
func WithStageCallback(fn func(Stage)) Option {
	return func(o *Orchestrator) {
		o.onStage = fn
	}
}

// New creates an orchestrator over the two providers and a session.
func New(primary, validator gateway.Provider, sess *session.Session, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		primary:   primary,
		validator: validator,
		session:   sess,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Session exposes the session the orchestrator writes into.
func (o *Orchestrator) Session() *session.Session { return o.session }

func (o *Orchestrator) stage(s Stage) {
	if o.onStage != nil {
		o.onStage(s)
	}
}

// Run executes the initial research flow for a company in the given mode.
// In strict mode a failure of the first generation stage is fatal and no
// report is produced; validation and refinement failures degrade gracefully.
// Any state from a previous run is cleared first, so the report, ledger, and
// section states always describe the current company only.
func (o *Orchestrator) Run(ctx context.Context, company string, mode Mode) (*model.Report, error) {
	o.session.Reset()
	if mode == ModeLenient {
		return o.runLenient(ctx, company)
	}
	return o.runStrict(ctx, company)
}

func (o *Orchestrator) runStrict(ctx context.Context, company string) (*model.Report, error) {
	log := zap.L().With(zap.String("company", company))

	// Stage 1: primary provider searches the web and drafts the report.
	o.stage(StageSearching)
	log.Info("research: searching", zap.String("provider", o.primary.Name()))

	text, err := o.primary.Send(ctx, prompt.Research(company))
	if err != nil {
		o.stage(StageErrored)
		return nil, eris.Wrap(err, "research: analysis failed")
	}

	raw, err := extract.Object(text)
	if err != nil {
		o.stage(StageErrored)
		return nil, eris.Wrap(err, "research: analysis failed")
	}

	var report model.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		o.stage(StageErrored)
		return nil, eris.Wrap(err, "research: analysis failed")
	}

	// Stage 2: independent provider re-searches and flags contradictions.
	// Fully best-effort; the pipeline proceeds on any failure.
	o.stage(StageCrossReferencing)
	validation := o.crossReference(ctx, company, &report)

	// Stage 3: primary provider reconciles. On success the refined report
	// replaces the draft in full; on failure the draft stands.
	o.stage(StageFinalizing)
	o.refine(ctx, company, &report, validation)

	o.stage(StageDone)
	o.finish(&report, model.Source{
		Type:       model.SourceWeb,
		Model:      "Web Search",
		Title:      "Research: " + company,
		DataPoints: []string{"Company profile", "Market map", "Competitors", "News"},
	})

	log.Info("research: complete",
		zap.String("quality", string(report.DataQuality)),
		zap.Int("competitors", len(report.TopCompetitors)),
	)
	return o.session.Report(), nil
}

// crossReference runs the validation stage and returns the validator's raw
// JSON, or nil when validation is unavailable.
func (o *Orchestrator) crossReference(ctx context.Context, company string, report *model.Report) json.RawMessage {
	log := zap.L().With(zap.String("company", company))

	if o.validator == nil {
		log.Warn("research: no validator configured, skipping validation")
		return nil
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Warn("research: validation unavailable", zap.Error(err))
		return nil
	}

	text, err := o.validator.Send(ctx, prompt.Validation(company, string(reportJSON)))
	if err != nil {
		log.Warn("research: validation unavailable",
			zap.String("provider", o.validator.Name()),
			zap.Error(err),
		)
		return nil
	}

	raw, err := extract.Object(text)
	if err != nil {
		log.Warn("research: validation response unparsable, skipping", zap.Error(err))
		return nil
	}
	return raw
}

// refine runs the refinement stage, replacing *report in place on success.
func (o *Orchestrator) refine(ctx context.Context, company string, report *model.Report, validation json.RawMessage) {
	log := zap.L().With(zap.String("company", company))

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Warn("research: refinement skipped", zap.Error(err))
		return
	}

	text, err := o.primary.Send(ctx, prompt.Refinement(company, string(reportJSON), string(validation)))
	if err != nil {
		log.Warn("research: refinement failed, keeping pre-refinement report", zap.Error(err))
		return
	}

	raw, err := extract.Object(text)
	if err != nil {
		log.Warn("research: refinement unparsable, keeping pre-refinement report", zap.Error(err))
		return
	}

	var refined model.Report
	if err := json.Unmarshal(raw, &refined); err != nil {
		log.Warn("research: refinement does not fit report, keeping pre-refinement report", zap.Error(err))
		return
	}
	*report = refined
}

// finish installs the report, derives the competitor pre-selection flags
// (direct competitors pre-selected for the deep dive) and writes the single
// ledger entry for the whole flow.
func (o *Orchestrator) finish(report *model.Report, src model.Source) {
	o.session.SetReport(report)

	selections := make(map[int]bool, len(report.TopCompetitors))
	for i, c := range report.TopCompetitors {
		selections[i] = c.Type == model.CompetitorDirect
	}
	o.session.SetSelections(selections)

	o.session.AddSource(src)
}
