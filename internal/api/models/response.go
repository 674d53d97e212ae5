package models

// ScoreResponse is the outcome of a single match
type ScoreResponse struct {
	ScoreA   int    `json:"score_a"`
	ScoreB   int    `json:"score_b"`
	Outcome  string `json:"outcome"` // "WIN", "DRAW", "LOSS" from a's view
	MaxScore int    `json:"max_score"`
}

// EstimateResponse represents the response from an estimate run
type EstimateResponse struct {
	Strategy []int           `json:"strategy"`
	Summary  EstimateSummary `json:"summary"`
	Trials   []TrialRow      `json:"trials,omitempty"`
}

// EstimateSummary contains aggregated estimate results
type EstimateSummary struct {
	Score      float64 `json:"score"`
	Stdev      float64 `json:"stdev"`
	StdErr     float64 `json:"std_err"`
	Confidence float64 `json:"confidence"`
	CILow      float64 `json:"ci_low"`
	CIHigh     float64 `json:"ci_high"`
	Trials     int     `json:"trials"`
	Population int     `json:"population"`
	Seed       uint64  `json:"seed"`
}

// TrialRow represents one trial in the estimate ledger
type TrialRow struct {
	Index          int     `json:"index"`
	PopulationSize int     `json:"population_size"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	MeanScore      float64 `json:"mean_score"`
	CumMean        float64 `json:"cum_mean"`
}

// SelectResponse represents the response from a selection run
type SelectResponse struct {
	Best       []int     `json:"best"`
	Score      float64   `json:"score"`
	Candidates int       `json:"candidates"`
	Rankings   []Ranking `json:"rankings"`
}

// Ranking represents one ranked candidate
type Ranking struct {
	Rank       int     `json:"rank"`
	Index      int     `json:"index"`
	Allocation []int   `json:"allocation"`
	Score      float64 `json:"score"`
}

// GeneratorInfo represents information about a candidate generator
type GeneratorInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a generator parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// PoolResponse describes the server's empirical pool
type PoolResponse struct {
	Source       string               `json:"source"`
	Size         int                  `json:"size"`
	Total        int                  `json:"total"`
	RowsRead     int                  `json:"rows_read"`
	Malformed    int                  `json:"malformed"`
	WrongTotal   int                  `json:"wrong_total"`
	Battlefields []BattlefieldSummary `json:"battlefields"`
}

// BattlefieldSummary is the pool's deployment on one battlefield
type BattlefieldSummary struct {
	Battlefield int     `json:"battlefield"`
	Value       int     `json:"value"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Mean        float64 `json:"mean"`
	P05         float64 `json:"p05"`
	P50         float64 `json:"p50"`
	P95         float64 `json:"p95"`
	ZeroShare   float64 `json:"zero_share"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
