package types

// PlacementDecision is where a source file should end up.
type PlacementDecision struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	// CopyIndex is the "(n) " prefix used to dodge a collision; 0 means none.
	CopyIndex int `json:"copy_index,omitempty"`
	// Overwrite is set when the destination exists and the policy allows replacing it.
	Overwrite bool `json:"overwrite,omitempty"`
}

// ProcessingOutcome holds the result of organizing a single file.
type ProcessingOutcome struct {
	SourcePath string            `json:"source_path"`
	Decision   PlacementDecision `json:"decision"`
	Action     Action            `json:"action"`
	DryRun     bool              `json:"dry_run"`
	Error      error             `json:"-"`
}

// Succeeded reports whether the file was placed (or would have been, in dry-run).
func (o ProcessingOutcome) Succeeded() bool {
	return o.Error == nil
}

// BatchSummary collects the outcomes of one run, in input order.
type BatchSummary struct {
	RunID    string              `json:"run_id"`
	DryRun   bool                `json:"dry_run"`
	Outcomes []ProcessingOutcome `json:"outcomes"`
}

// Succeeded counts outcomes without an error.
func (s BatchSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Succeeded() {
			n++
		}
	}
	return n
}

// Failed counts outcomes with an error.
func (s BatchSummary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}
