package model

// Insight is AI-written narrative text for a ranking batch. It is an
// enhancement feature only and never feeds the numeric pipeline.
type Insight struct {
	Summary     string `json:"summary"`
	Strength    string `json:"strength"`
	Opportunity string `json:"opportunity"`
	// Pending is true when the insight is a placeholder (generation timed
	// out or failed) rather than model output.
	Pending bool `json:"pending"`
}

// PendingInsight is the fallback substituted when generation times out or
// fails. Callers render it as "analysis not available yet", never as an error.
func PendingInsight() *Insight {
	return &Insight{
		Summary:     "Analysis not available yet.",
		Strength:    "Run the analysis again to generate insights.",
		Opportunity: "Run the analysis again to generate insights.",
		Pending:     true,
	}
}
