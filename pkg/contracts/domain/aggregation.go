package domain

// AggregationRow is the share of one outcome within a (factor, status) group
type AggregationRow struct {
	Factor     Factor  `json:"Factor"`
	Status     Status  `json:"Status"`
	Outcome    Outcome `json:"Outcome"`
	Percentage float64 `json:"Percentage"`
}

// OutcomeCount is one entry of the Target frequency table
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}
