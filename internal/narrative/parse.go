package narrative

import (
	"encoding/json"
	"errors"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

var (
	ErrUnparsable = errors.New("model output is not a JSON object")
	ErrIncomplete = errors.New("model output is missing report sections")
)

// ParseReport extracts a Report from raw model output. It tries strict JSON
// first, then a repaired version, then Hjson, and requires all three
// sections to be non-empty.
func ParseReport(raw string) (Report, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return Report{}, ErrUnparsable
	}

	var r Report
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		r = Report{}
		repaired, rerr := jsonrepair.RepairJSON(cleaned)
		if rerr != nil || json.Unmarshal([]byte(repaired), &r) != nil {
			r = Report{}
			if herr := hjson.Unmarshal([]byte(cleaned), &r); herr != nil {
				return Report{}, ErrUnparsable
			}
		}
	}

	if !r.Complete() {
		return r, ErrIncomplete
	}
	return r, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(s)
	}
	return s
}
