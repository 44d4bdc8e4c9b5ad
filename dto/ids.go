package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hostelcare/hostel-backend/utils"
)

// EntityID is a record id that arrives either as a JSON number or as a
// numeric string (form selects post strings).
type EntityID uint

func (id *EntityID) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = EntityID(n)
		return nil
	}
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return utils.NewValidationError("Invalid worker")
	}
	if raw == nil {
		*id = 0
		return nil
	}
	parsed, err := ParseEntityID(*raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseEntityID parses a decimal id. Blank input is the zero id.
func ParseEntityID(raw string) (EntityID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, utils.NewValidationError("Invalid worker")
	}
	return EntityID(n), nil
}
