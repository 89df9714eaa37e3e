// Package intent classifies raw user messages into structured meeting
// actions via an external language model. The model is an untrusted,
// best-effort oracle: anything malformed degrades to a classification
// error the caller turns into a "please clarify" reply.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Actions the classifier may return.
const (
	ActionCreate         = "create"
	ActionList           = "list"
	ActionRoute          = "route"
	ActionGetLocation    = "get_location"
	ActionUpdateLocation = "update_location"
	ActionUpdateSummary  = "update_summary"
)

// Intent is the structured form of one user message.
type Intent struct {
	Action          string `json:"action"`
	Summary         string `json:"summary,omitempty"`
	Datetime        string `json:"datetime,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Location        string `json:"location,omitempty"`
	Query           string `json:"query,omitempty"`
	NewSummary      string `json:"new_summary,omitempty"`
	DateFilter      string `json:"date_filter,omitempty"`
}

// Classifier turns a raw user message into an Intent. today anchors the
// model's date arithmetic ("завтра" etc.) to the request time.
type Classifier interface {
	Classify(ctx context.Context, userMsg string, today time.Time) (*Intent, error)
}

var knownActions = map[string]bool{
	ActionCreate:         true,
	ActionList:           true,
	ActionRoute:          true,
	ActionGetLocation:    true,
	ActionUpdateLocation: true,
	ActionUpdateSummary:  true,
}

// Parse decodes a model response into an Intent, tolerating markdown
// code fences and surrounding noise. An unknown or missing action is an
// error, not a crash.
func Parse(raw string) (*Intent, error) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			s = s[i : j+1]
		}
	}

	var out Intent
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("intent: malformed model response: %w", err)
	}
	if !knownActions[out.Action] {
		return nil, fmt.Errorf("intent: unknown action %q", out.Action)
	}
	return &out, nil
}
