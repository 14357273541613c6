// Package report aggregates per-entry install outcomes into a summary and
// an exit status.
package report

// Status is the recorded outcome of one install entry.
type Status string

const (
	StatusInstalled   Status = "installed"
	StatusOverwritten Status = "overwritten"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"

	// Dry-run variants: what the installer would have done.
	StatusWouldInstall   Status = "would-install"
	StatusWouldOverwrite Status = "would-overwrite"
	StatusWouldSkip      Status = "would-skip"
	StatusWouldFail      Status = "would-fail"
)

// Outcome records what happened (or would happen) to one install entry.
type Outcome struct {
	// ID is the manifest entry id.
	ID string `json:"id"`

	// Status is the recorded outcome.
	Status Status `json:"status"`

	// From is the absolute source path (empty if resolution failed).
	From string `json:"from,omitempty"`

	// To is the absolute destination path.
	To string `json:"to,omitempty"`

	// Error holds the failure message for failed entries.
	Error string `json:"error,omitempty"`

	// Warning holds a non-fatal note, e.g. a missing SKILL.md.
	Warning string `json:"warning,omitempty"`
}

// Failed reports whether the outcome is a failure (real or simulated).
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed || o.Status == StatusWouldFail
}

// Summary counts outcomes by kind. Dry-run statuses count into the same
// buckets as their real counterparts.
type Summary struct {
	Installed   int `json:"installed"`
	Overwritten int `json:"overwritten"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
}

// Summarize builds a Summary from an ordered list of outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Status {
		case StatusInstalled, StatusWouldInstall:
			s.Installed++
		case StatusOverwritten, StatusWouldOverwrite:
			s.Overwritten++
		case StatusSkipped, StatusWouldSkip:
			s.Skipped++
		case StatusFailed, StatusWouldFail:
			s.Failed++
		}
	}
	return s
}

// OK reports whether the run succeeded. Skips are expected steady-state
// behavior and never fail a run; any failed entry does.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Total returns the number of counted outcomes.
func (s Summary) Total() int {
	return s.Installed + s.Overwritten + s.Skipped + s.Failed
}
