package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedStructure reports a candidate that cannot be read as a resume record at all.
var ErrMalformedStructure = errors.New("malformed resume structure")

// MalformedError explains why a candidate was rejected.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedStructure, e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedStructure
}

// Kind tags a Candidate.
type Kind int

const (
	Malformed Kind = iota
	Valid
)

func (k Kind) String() string {
	if k == Valid {
		return "valid"
	}
	return "malformed"
}

// Candidate is the result of the shape check. A Valid candidate holds a keyed
// record whose fields are still untrusted.
type Candidate struct {
	Kind   Kind
	record map[string]any
	reason string
}

// Err returns the rejection for a Malformed candidate and nil otherwise.
func (c Candidate) Err() error {
	if c.Kind == Valid {
		return nil
	}
	return &MalformedError{Reason: c.reason}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Inspect decodes raw JSON and checks that the top-level value is an object.
func Inspect(raw []byte) Candidate {
	raw = bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if len(raw) == 0 {
		return malformed("empty input")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return malformed("input is not valid JSON")
	}
	return InspectValue(v)
}

// InspectValue performs the shape check on an already decoded value.
func InspectValue(v any) Candidate {
	switch t := v.(type) {
	case map[string]any:
		return Candidate{Kind: Valid, record: t}
	case json.RawMessage:
		return Inspect(t)
	case []byte:
		return Inspect(t)
	case nil:
		return malformed("top-level value is null")
	case string:
		return malformed("top-level value is a string")
	case float64, json.Number, int, int64:
		return malformed("top-level value is a number")
	case bool:
		return malformed("top-level value is a boolean")
	case []any:
		return malformed("top-level value is an array")
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return malformed("value cannot be encoded as JSON")
		}
		return Inspect(raw)
	}
}

func malformed(reason string) Candidate {
	return Candidate{Kind: Malformed, reason: reason}
}
