package model

// CompetitorType classifies how closely a competitor overlaps with the subject.
type CompetitorType string

const (
	CompetitorDirect  CompetitorType = "direct"
	CompetitorBroader CompetitorType = "broader"
)

// DataQuality is the quality tier assigned by the refinement stage.
type DataQuality string

const (
	QualityVerified DataQuality = "verified" // high confidence from multiple sources
	QualityPartial  DataQuality = "partial"  // some gaps
	QualityLimited  DataQuality = "limited"  // needs verification
)

// Report is the single subject record produced by the research pipeline.
// Base fields are populated by the initial flow; the deep-dive fields
// (CompetitorDetails, FundingDetails, CompetitorFunding, TeamDetails,
// BoardMembers) stay empty until their section is researched on demand.
// JSON field names match the schemas requested from the providers, so a
// provider fragment can be merged into the report without remapping.
type Report struct {
	Name           string       `json:"name"`
	Logo           string       `json:"logo"`
	Tagline        string       `json:"tagline"`
	Industry       string       `json:"industry"`
	Sector         string       `json:"sector"`
	FoundingYear   int          `json:"foundingYear"`
	Headquarters   string       `json:"headquarters"`
	EmployeeCount  string       `json:"employeeCount"`
	TotalFunding   string       `json:"totalFunding"`
	Stage          string       `json:"stage"`
	Website        string       `json:"website,omitempty"`
	Description    string       `json:"description"`
	MarketSegments []string     `json:"marketSegments"`
	TopCompetitors []Competitor `json:"topCompetitors"`
	MarketMap      MarketMap    `json:"marketMap"`
	ValueChain     ValueChain   `json:"valueChain"`
	KeyInsights    []string     `json:"keyInsights,omitempty"`
	SearchSources  []string     `json:"searchSources,omitempty"`

	// Quality metadata, set by the refinement stage.
	DataQuality     DataQuality `json:"dataQuality,omitempty"`
	ValidationNotes []string    `json:"validationNotes,omitempty"`

	// Deep-dive sections.
	CompetitorDetails []CompetitorDetail `json:"competitorDetails,omitempty"`
	FundingDetails    *FundingDetails    `json:"fundingDetails,omitempty"`
	CompetitorFunding []CompetitorFunding `json:"competitorFunding,omitempty"`
	TeamDetails       []TeamMember        `json:"teamDetails,omitempty"`
	BoardMembers      []BoardMember       `json:"boardMembers,omitempty"`
}

// Competitor is the lightweight competitor summary from the initial flow.
type Competitor struct {
	Name        string         `json:"name"`
	Type        CompetitorType `json:"type"`
	Description string         `json:"description"`
	Funding     string         `json:"funding,omitempty"`
}

// CompetitorDetail is the full profile fetched by the competitor deep dive.
// Everything beyond the summary fields is optional: the provider may not
// have verified data for a given company.
type CompetitorDetail struct {
	Name           string         `json:"name"`
	Type           CompetitorType `json:"type,omitempty"`
	Description    string         `json:"description,omitempty"`
	Founded        int            `json:"founded,omitempty"`
	Headquarters   string         `json:"headquarters,omitempty"`
	EmployeeCount  string         `json:"employeeCount,omitempty"`
	TotalFunding   string         `json:"totalFunding,omitempty"`
	LastRound      string         `json:"lastRound,omitempty"`
	KeyProducts    []string       `json:"keyProducts,omitempty"`
	Strengths      []string       `json:"strengths,omitempty"`
	Weaknesses     []string       `json:"weaknesses,omitempty"`
	RecentNews     string         `json:"recentNews,omitempty"`
	Differentiator string         `json:"differentiator,omitempty"`
}

// MarketMap positions the subject among named market segments.
type MarketMap struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Segments    []MarketSegment `json:"segments"`
}

// MarketSegment is one named group of companies in the market map.
type MarketSegment struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Companies   []MarketCompany `json:"companies"`
}

// MarketCompany is a single company within a market segment. IsTarget marks
// the subject of the report.
type MarketCompany struct {
	Name        string `json:"name"`
	IsTarget    bool   `json:"isTarget"`
	Description string `json:"description,omitempty"`
}

// ValueChain is the ordered sequence of industry stages around the subject.
type ValueChain struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Stages      []ValueChainStage `json:"stages"`
}

// ValueChainStage names one stage and its participants. At most one stage
// should carry TargetPosition in well-formed data; this is not enforced.
type ValueChainStage struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Companies      []string `json:"companies"`
	TargetPosition bool     `json:"targetPosition"`
}

// FundingDetails is the funding deep-dive section.
type FundingDetails struct {
	Rounds        []FundingRound `json:"rounds"`
	TotalRaised   string         `json:"totalRaised"`
	LastValuation string         `json:"lastValuation"`
	KeyInvestors  []Investor     `json:"keyInvestors"`
}

// FundingRound is a single financing round.
type FundingRound struct {
	Date         string   `json:"date"`
	Type         string   `json:"type"`
	Amount       string   `json:"amount"`
	LeadInvestor string   `json:"leadInvestor"`
	Participants []string `json:"participants,omitempty"`
	Valuation    string   `json:"valuation,omitempty"`
}

// Investor is a key investor with its track record.
type Investor struct {
	Name       string   `json:"name"`
	Type       string   `json:"type,omitempty"`
	OtherDeals []string `json:"otherDeals,omitempty"`
}

// CompetitorFunding compares a competitor's fundraising with the subject's.
type CompetitorFunding struct {
	Name          string `json:"name"`
	TotalRaised   string `json:"totalRaised"`
	LastRound     string `json:"lastRound"`
	LastValuation string `json:"lastValuation,omitempty"`
}

// TeamMember is an executive profile from the team deep dive.
type TeamMember struct {
	Name          string         `json:"name"`
	Role          string         `json:"role"`
	Background    string         `json:"background,omitempty"`
	PreviousRoles []PreviousRole `json:"previousRoles,omitempty"`
	Education     []Education    `json:"education,omitempty"`
	Highlights    []string       `json:"highlights,omitempty"`
	LinkedIn      string         `json:"linkedin,omitempty"`
}

// PreviousRole is one prior position held by a team member.
type PreviousRole struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	Years   string `json:"years,omitempty"`
}

// Education is one degree held by a team member.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        int    `json:"year,omitempty"`
}

// BoardMember is a board-level profile from the team deep dive.
type BoardMember struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Background string `json:"background,omitempty"`
}
