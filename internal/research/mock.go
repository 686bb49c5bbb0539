package research

import (
	"strings"

	"github.com/sells-group/snapshot/internal/model"
)

// MockReport builds the deterministic placeholder report used by the lenient
// flow when providers are unreachable. Derived only from the company name.
func MockReport(name string) *model.Report {
	return &model.Report{
		Name:          name,
		Logo:          logoLetter(name),
		Tagline:       "AI-powered startup intelligence platform",
		Industry:      "Technology",
		Sector:        "Enterprise Software",
		FoundingYear:  2021,
		Headquarters:  "San Francisco, CA",
		EmployeeCount: "50-100",
		TotalFunding:  "$25M",
		Stage:         "Series A",
		Description: name + " is an innovative company in the technology sector, " +
			"focused on delivering cutting-edge solutions to enterprise customers.",
		MarketSegments: []string{"Enterprise Software", "AI/ML", "Data Analytics", "SaaS"},
		TopCompetitors: []model.Competitor{
			{Name: "Competitor A", Type: model.CompetitorDirect, Description: "Direct competitor in the same space"},
			{Name: "Competitor B", Type: model.CompetitorDirect, Description: "Another key player"},
			{Name: "Competitor C", Type: model.CompetitorBroader, Description: "Adjacent market player"},
		},
		MarketMap: model.MarketMap{
			Title: name + " Industry Market Map",
			Segments: []model.MarketSegment{
				{
					Name: "Core Platform",
					Companies: []model.MarketCompany{
						{Name: name, IsTarget: true},
						{Name: "Competitor A"},
						{Name: "Competitor B"},
					},
				},
				{
					Name: "Data & Analytics",
					Companies: []model.MarketCompany{
						{Name: "Analytics Co"},
						{Name: "Data Platform"},
					},
				},
				{
					Name: "Infrastructure",
					Companies: []model.MarketCompany{
						{Name: "Cloud Provider"},
						{Name: "DevOps Tool"},
					},
				},
			},
		},
		ValueChain: model.ValueChain{
			Stages: []model.ValueChainStage{
				{
					Name:        "Data Collection",
					Description: "Gathering raw data from various sources",
					Companies:   []string{"Data Provider A", "Data Provider B"},
				},
				{
					Name:           "Processing & Analysis",
					Description:    "Transform and analyze data",
					Companies:      []string{name, "Competitor A"},
					TargetPosition: true,
				},
				{
					Name:        "Delivery & Integration",
					Description: "Deliver insights to end users",
					Companies:   []string{"Integration Partner", "API Platform"},
				},
				{
					Name:        "End User Applications",
					Description: "Final consumer-facing applications",
					Companies:   []string{"App A", "App B"},
				},
			},
		},
	}
}

// logoLetter is the uppercased first rune of the name.
func logoLetter(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
