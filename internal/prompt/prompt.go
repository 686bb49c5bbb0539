// Package prompt builds the fixed prompt templates sent to the providers.
// The JSON schemas embedded in each template are load-bearing: extraction and
// report merging expect exactly these field names and nesting.
package prompt

import (
	"fmt"
	"strings"
)

// Research is the strict-flow search prompt for the primary provider. It instructs the
// model to web-search first and return the full report schema.
func Research(name string) string {
	return fmt.Sprintf(`You are a startup intelligence analyst. Research "%s" using web search.

CRITICAL: Search the web first. Use queries like:
- "%s" company official website
- "%s" Crunchbase funding
- "%s" LinkedIn company
- "%s" latest news

DO NOT hallucinate. Use "Unknown" for unverified data. Format: $1.2B not $1200M.

Return ONLY valid JSON:
{
  "name": "Company Name",
  "logo": "first letter",
  "tagline": "From their actual website",
  "industry": "Primary industry",
  "sector": "Specific sector",
  "foundingYear": 2020,
  "headquarters": "City, Country",
  "employeeCount": "Range or Unknown",
  "totalFunding": "$XXM or Unknown",
  "stage": "Series X or Unknown",
  "website": "https://...",
  "description": "Accurate description from search",
  "marketSegments": ["Segment 1", "Segment 2"],
  "topCompetitors": [
    {"name": "Competitor", "type": "direct", "description": "What they do", "funding": "$XXM"}
  ],
  "marketMap": {
    "title": "Market Map",
    "description": "Overview",
    "segments": [
      {"name": "Segment", "description": "Desc", "companies": [{"name": "Co", "isTarget": true, "description": "Brief"}]}
    ]
  },
  "valueChain": {
    "title": "Value Chain",
    "description": "Flow",
    "stages": [{"name": "Stage", "description": "Desc", "companies": ["Co"], "targetPosition": false}]
  },
  "keyInsights": ["Insight 1", "Insight 2"],
  "searchSources": ["source1.com", "source2.com"]
}`, name, name, name, name, name)
}

// Overview is the lenient-flow prompt: a single-shot report without the
// web-search instructions, answered from the model's own knowledge.
func Overview(name string) string {
	return fmt.Sprintf(`You are a startup intelligence analyst. Analyze the startup "%s" and provide comprehensive data.

Return ONLY a valid JSON object (no markdown, no explanation) with this exact structure:
{
  "name": "Company Name",
  "logo": "first letter of company",
  "tagline": "One sentence description",
  "industry": "Primary industry",
  "sector": "Specific sector",
  "foundingYear": 2020,
  "headquarters": "City, Country",
  "employeeCount": "50-100",
  "totalFunding": "$10M",
  "stage": "Series A",
  "description": "2-3 sentence company description",
  "marketSegments": ["segment1", "segment2", "segment3"],
  "topCompetitors": [
    {"name": "Competitor 1", "type": "direct", "description": "Brief description"},
    {"name": "Competitor 2", "type": "direct", "description": "Brief description"},
    {"name": "Competitor 3", "type": "broader", "description": "Brief description"}
  ],
  "marketMap": {
    "title": "Industry Market Map Title",
    "segments": [
      {
        "name": "Segment Name",
        "companies": [
          {"name": "Company", "isTarget": false}
        ]
      }
    ]
  },
  "valueChain": {
    "stages": [
      {
        "name": "Stage Name",
        "description": "What happens at this stage",
        "companies": ["Company1", "Company2"],
        "targetPosition": false
      }
    ]
  }
}

Be accurate and comprehensive. If you don't have specific information, make reasonable estimates based on the industry.`, name)
}

// Validation is the cross-referencing prompt for the validator. reportJSON is
// the serialized current report.
func Validation(name, reportJSON string) string {
	return fmt.Sprintf(`You are a data validation AI with web search capabilities. Review this startup intelligence data and VERIFY it against your own web searches.

STARTUP DATA TO VALIDATE:
%s

TASKS:
1. Use Google Search to independently verify key facts:
   - Search for "%s" to confirm company details
   - Search for "%s funding" to verify funding amounts
   - Search for "%s founders" to verify team info
2. Flag any data points that contradict your search results
3. Fix obvious errors (wrong funding formats like $1200M should be $1.2B, incorrect dates, etc.)
4. Add a "validationFlags" array listing any concerns or contradictions found
5. Add a "suggestedCorrections" object with field names and corrected values based on your searches
6. Rate overall "dataConfidence": "high", "medium", or "low"

Return the data with your validation additions. Return ONLY valid JSON, no markdown.`, reportJSON, name, name, name)
}

// noValidation is embedded in the refinement prompt when the validation stage
// produced nothing.
const noValidation = "No validation feedback available"

// Refinement is the final quality-control prompt for the primary provider. Pass an
// empty validationJSON when the validation stage failed.
func Refinement(name, reportJSON, validationJSON string) string {
	validation := validationJSON
	if validation == "" {
		validation = noValidation
	}
	return fmt.Sprintf(`You are a startup intelligence analyst doing final quality control. Use web search to verify any disputed or uncertain data points.

ORIGINAL DATA:
%s

VALIDATION FEEDBACK FROM GEMINI:
%s

TASKS:
1. Review the validation flags and suggested corrections
2. Use web search to verify any disputed data points - search for "%s" and related queries
3. Apply corrections that you can verify are accurate
4. If data is flagged as suspicious and you cannot verify it, mark as "Unverified" or use "Unknown"
5. Ensure all funding amounts use proper format ($1.2B not $1200M)
6. Set final "dataQuality": "verified" (high confidence from multiple sources), "partial" (some gaps), or "limited" (needs verification)
7. Add "validationNotes" array summarizing what was checked, corrected, or flagged

Return the final refined JSON. Return ONLY valid JSON, no markdown.`, reportJSON, validation, name)
}

// Competitors is the competitor deep-dive prompt for the caller-selected
// competitor names.
func Competitors(names []string) string {
	return fmt.Sprintf(`Search the web for detailed information about: %s
Use "Unknown" for unverified data. Format billions as $1.2B.

Return ONLY valid JSON:
{"competitorDetails": [{"name": "Name", "founded": 2018, "headquarters": "City", "employeeCount": "100-500", "totalFunding": "$50M", "lastRound": "Series B", "keyProducts": ["Product"], "strengths": ["Strength"], "weaknesses": ["Weakness"], "differentiator": "Unique value"}]}`, strings.Join(names, ", "))
}

// Funding is the funding deep-dive prompt.
func Funding(name string) string {
	return fmt.Sprintf(`Search the web for funding details about %s.
Format: $1.2B not $1200M. Use "Unknown" for unverified data.

Return ONLY valid JSON:
{"fundingDetails": {"rounds": [{"date": "Month Year", "type": "Series X", "amount": "$XXM", "leadInvestor": "Name", "participants": ["Inv"]}], "totalRaised": "$XXM", "lastValuation": "$X.XB", "keyInvestors": [{"name": "Name", "type": "VC", "otherDeals": ["Co"]}]}, "competitorFunding": [{"name": "Competitor", "totalRaised": "$XXM", "lastRound": "Series X", "lastValuation": "$X.XB"}]}`, name)
}

// Team is the team deep-dive prompt.
func Team(name string) string {
	return fmt.Sprintf(`Search the web for executive team at %s.

Return ONLY valid JSON:
{"teamDetails": [{"name": "Name", "role": "CEO", "background": "Brief bio", "previousRoles": [{"company": "Co", "role": "Title", "years": "2018-2022"}], "education": [{"institution": "University", "degree": "MBA", "year": 2015}], "highlights": ["Achievement"], "linkedin": "https://linkedin.com/in/example"}], "boardMembers": [{"name": "Name", "role": "Board", "background": "Brief"}]}`, name)
}
