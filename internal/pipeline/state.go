package pipeline

import "campaign-gen/internal/ratio"

// State is the outcome of one (product, ratio) item.
type State string

const (
	StatePending          State = "pending"
	StateSkipped          State = "skipped"
	StatePromptFailed     State = "prompt_failed"
	StateGenerationFailed State = "generation_failed"
	StateSaveFailed       State = "save_failed"
	StateSucceeded        State = "succeeded"

	// StateInterrupted marks an item whose call was cut short by run
	// cancellation. It is neither a success nor a failure.
	StateInterrupted State = "interrupted"
)

func (s State) Failed() bool {
	switch s {
	case StatePromptFailed, StateGenerationFailed, StateSaveFailed:
		return true
	default:
		return false
	}
}

type ItemResult struct {
	Product string
	Ratio   ratio.Ratio
	State   State
	Path    string
	Err     error
}

// Result tallies one run. Items are in processing order.
type Result struct {
	Campaign  string
	Succeeded int
	Failed    int
	Skipped   int
	Items     []ItemResult
}

func (r *Result) record(item ItemResult) {
	switch {
	case item.State == StateSucceeded:
		r.Succeeded++
	case item.State == StateSkipped:
		r.Skipped++
	case item.State.Failed():
		r.Failed++
	}
	r.Items = append(r.Items, item)
}
