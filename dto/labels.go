package dto

import (
	"encoding/json"
	"strings"

	"github.com/hostelcare/hostel-backend/utils"
)

// LabelSet is "one or more task labels". On the wire it may be a single
// string or an array of strings; both decode to the same set.
type LabelSet []string

func (l *LabelSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = LabelSet{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return utils.NewValidationError("cleaningType must be a string or an array of strings")
	}
	*l = LabelSet(many)
	return nil
}

// Normalize trims labels, drops empty ones and removes duplicates, keeping
// the first occurrence order.
func (l LabelSet) Normalize() []string {
	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, label := range l {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	return out
}
