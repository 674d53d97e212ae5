package model

// Outcome is a human-friendly match result from the first player's view.
// Keep these values stable; they are intended for CSV and JSON output.
type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeDraw Outcome = "DRAW"
	OutcomeLoss Outcome = "LOSS"
)

func OutcomeFromScores(p ScorePair) Outcome {
	switch {
	case p.A > p.B:
		return OutcomeWin
	case p.A < p.B:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
