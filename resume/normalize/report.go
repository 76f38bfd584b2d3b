package normalize

import "sort"

// Action describes what the normalizer did to a field.
type Action string

const (
	ActionDefaulted Action = "defaulted"
	ActionDropped   Action = "dropped"
	ActionConverted Action = "converted"
)

// Repair records one change made while normalizing.
type Repair struct {
	Path   string `json:"path"`
	Action Action `json:"action"`
	Detail string `json:"detail,omitempty"`
}

// Report lists repairs in the order they were applied.
type Report struct {
	Repairs []Repair `json:"repairs,omitempty"`
}

func (r *Report) add(path string, action Action, detail string) {
	r.Repairs = append(r.Repairs, Repair{Path: path, Action: action, Detail: detail})
}

func (r *Report) merge(other Report) {
	r.Repairs = append(r.Repairs, other.Repairs...)
}

// Empty reports whether the candidate was already canonical.
func (r Report) Empty() bool {
	return len(r.Repairs) == 0
}

// Counts tallies repairs per action.
func (r Report) Counts() map[Action]int {
	out := make(map[Action]int, 3)
	for _, rep := range r.Repairs {
		out[rep.Action]++
	}
	return out
}

// Paths returns the distinct repaired paths, sorted.
func (r Report) Paths() []string {
	seen := make(map[string]struct{}, len(r.Repairs))
	out := make([]string, 0, len(r.Repairs))
	for _, rep := range r.Repairs {
		if _, ok := seen[rep.Path]; ok {
			continue
		}
		seen[rep.Path] = struct{}{}
		out = append(out, rep.Path)
	}
	sort.Strings(out)
	return out
}
