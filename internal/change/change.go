// internal/change/change.go
package change

// State is a reviewer's decision on a change. It is mutated only by explicit
// reviewer action, never inferred.
type State string

const (
	Pending  State = "pending"
	Accepted State = "accepted"
	Rejected State = "rejected"
)

// Kind classifies a change.
type Kind string

const (
	Added    Kind = "added"
	Deleted  Kind = "deleted"
	Modified Kind = "modified"
)

// LineRange is an inclusive range of zero-based line positions in the
// original document. For Added changes Start is the insertion point.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Change is one reviewable unit surfaced to a reviewer.
type Change struct {
	ID              string    `json:"id"`
	Kind            Kind      `json:"kind"`
	Section         string    `json:"section,omitempty"`
	OriginalContent string    `json:"original_content,omitempty"`
	NewContent      string    `json:"new_content,omitempty"`
	Range           LineRange `json:"line_range"`
	State           State     `json:"state"`
}

// Stale returns the ids that do not identify any change in the given set.
// A decision carrying a stale id references a diff that has since been
// recomputed; callers must surface this rather than guess.
func Stale(changes []Change, ids []string) []string {
	known := make(map[string]bool, len(changes))
	for _, c := range changes {
		known[c.ID] = true
	}
	var stale []string
	for _, id := range ids {
		if !known[id] {
			stale = append(stale, id)
		}
	}
	return stale
}

// CarryDecisions copies accepted/rejected states from a previous change set
// onto a freshly computed one. Only changes whose content-derived id
// survived the recompute keep their decision; everything else resets to
// pending.
func CarryDecisions(previous, fresh []Change) []Change {
	decided := make(map[string]State, len(previous))
	for _, c := range previous {
		if c.State != Pending && c.State != "" {
			decided[c.ID] = c.State
		}
	}
	out := make([]Change, len(fresh))
	copy(out, fresh)
	for i := range out {
		if state, ok := decided[out[i].ID]; ok {
			out[i].State = state
		}
	}
	return out
}
