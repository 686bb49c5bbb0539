package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/snapshot/internal/model"
)

func baseReport() *model.Report {
	return &model.Report{
		Name:         "Stripe",
		Logo:         "S",
		Tagline:      "Payments infrastructure for the internet",
		Industry:     "Fintech",
		TotalFunding: "$2.2B",
		TopCompetitors: []model.Competitor{
			{Name: "Adyen", Type: model.CompetitorDirect},
			{Name: "PayPal", Type: model.CompetitorBroader},
			{Name: "Square", Type: model.CompetitorDirect},
		},
	}
}

func TestMergeFragmentAddsAndOverwrites(t *testing.T) {
	s := New()
	s.SetReport(baseReport())

	frag := json.RawMessage(`{
		"totalFunding": "$9.4B",
		"fundingDetails": {
			"rounds": [{"date": "March 2023", "type": "Series I", "amount": "$6.5B", "leadInvestor": "a16z"}],
			"totalRaised": "$9.4B",
			"lastValuation": "$50B",
			"keyInvestors": [{"name": "Sequoia", "type": "VC"}]
		}
	}`)
	require.NoError(t, s.MergeFragment(frag))

	r := s.Report()
	assert.Equal(t, "$9.4B", r.TotalFunding)         // overwritten
	assert.Equal(t, "Stripe", r.Name)                // untouched
	assert.Equal(t, "Fintech", r.Industry)           // untouched
	require.NotNil(t, r.FundingDetails)              // added
	assert.Equal(t, "$50B", r.FundingDetails.LastValuation)
	require.Len(t, r.FundingDetails.Rounds, 1)
	assert.Equal(t, "a16z", r.FundingDetails.Rounds[0].LeadInvestor)
}

func TestMergeFragmentFailureLeavesReport(t *testing.T) {
	s := New()
	s.SetReport(baseReport())

	frag := json.RawMessage(`{"fundingDetails": {"rounds": [...], "totalRaised": "$1B"}}`)
	err := s.MergeFragment(frag)
	require.Error(t, err)

	r := s.Report()
	assert.Equal(t, "$2.2B", r.TotalFunding)
	assert.Nil(t, r.FundingDetails)
}

// A successful merge followed by a failed one keeps the first merge's data.
func TestMergeIdempotenceOnFailedRerun(t *testing.T) {
	s := New()
	s.SetReport(baseReport())

	good := json.RawMessage(`{"teamDetails": [{"name": "Patrick Collison", "role": "CEO"}]}`)
	require.NoError(t, s.MergeFragment(good))
	first := s.Report()

	bad := json.RawMessage(`{"teamDetails": "not a list"}`)
	require.Error(t, s.MergeFragment(bad))

	assert.Equal(t, first, s.Report())
}

func TestMergeWithoutReport(t *testing.T) {
	s := New()
	err := s.MergeFragment(json.RawMessage(`{"teamDetails": []}`))
	assert.Error(t, err)
}

func TestLedgerAppendOnly(t *testing.T) {
	s := New()

	first := s.AddSource(model.Source{
		Type:       model.SourceWeb,
		Model:      "Web Search",
		Title:      "Research: Stripe",
		DataPoints: []string{"Company profile"},
	})
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Timestamp.IsZero())

	second := s.AddSource(model.Source{Type: model.SourceAI, Title: "Funding research"})
	assert.NotEqual(t, first.ID, second.ID)

	got := s.Sources()
	require.Len(t, got, 2)
	assert.Equal(t, "Research: Stripe", got[0].Title)
	assert.Equal(t, "Funding research", got[1].Title)

	// Mutating the returned slice must not touch the ledger.
	got[0].Title = "tampered"
	assert.Equal(t, "Research: Stripe", s.Sources()[0].Title)
}

func TestInFlightGuard(t *testing.T) {
	s := New()
	assert.Equal(t, SectionNotStarted, s.State(SectionFunding))

	require.True(t, s.Begin(SectionFunding))
	assert.False(t, s.Begin(SectionFunding), "re-entrant trigger must be rejected")
	assert.True(t, s.Begin(SectionTeam), "flags are independent across sections")

	s.End(SectionFunding, false)
	assert.Equal(t, SectionNotStarted, s.State(SectionFunding))
	assert.True(t, s.Begin(SectionFunding), "failed dive is re-triggerable")

	s.End(SectionFunding, true)
	assert.Equal(t, SectionPopulated, s.State(SectionFunding))
}

// A failed re-run of an already populated section stays Populated.
func TestEndAfterFailedRerunKeepsPopulated(t *testing.T) {
	s := New()
	r := baseReport()
	r.TeamDetails = []model.TeamMember{{Name: "Jane", Role: "CTO"}}
	s.SetReport(r)

	require.True(t, s.Begin(SectionTeam))
	s.End(SectionTeam, true)

	require.True(t, s.Begin(SectionTeam))
	s.End(SectionTeam, false)
	assert.Equal(t, SectionPopulated, s.State(SectionTeam))
}

func TestSelectedCompetitors(t *testing.T) {
	s := New()
	s.SetReport(baseReport())
	s.SetSelections(map[int]bool{0: true, 1: false, 2: true})

	assert.Equal(t, []string{"Adyen", "Square"}, s.SelectedCompetitors())
}

func TestResetClearsEverything(t *testing.T) {
	s := New()
	s.SetReport(baseReport())
	s.SetSelections(map[int]bool{0: true, 1: false})
	s.AddSource(model.Source{Type: model.SourceWeb, Title: "Research: Stripe"})
	require.True(t, s.Begin(SectionFunding))
	s.End(SectionFunding, true)

	s.Reset()

	assert.Nil(t, s.Report())
	assert.Empty(t, s.Sources())
	assert.Empty(t, s.Selections())
	for _, section := range Sections() {
		assert.Equal(t, SectionNotStarted, s.State(section))
	}

	// The session is fully usable again after a reset.
	s.SetReport(baseReport())
	s.AddSource(model.Source{Type: model.SourceWeb, Title: "Research: Acme"})
	require.Len(t, s.Sources(), 1)
	assert.True(t, s.Begin(SectionFunding))
}

func TestParseSection(t *testing.T) {
	for _, name := range []string{"competitors", "funding", "team"} {
		sec, err := ParseSection(name)
		require.NoError(t, err)
		assert.Equal(t, Section(name), sec)
	}
	_, err := ParseSection("board")
	assert.Error(t, err)
}
