package models

import (
	"encoding/json"
	"strings"
)

// ValidationIssue is one entry of a list-shaped error detail.
type ValidationIssue struct {
	Loc  []interface{} `json:"loc,omitempty"`
	Msg  string        `json:"msg"`
	Type string        `json:"type,omitempty"`
}

// ErrorDetail decodes the API error body, whose "detail" is either a
// plain string or a list of validation issues.
type ErrorDetail struct {
	Text   string
	Issues []ValidationIssue
}

func (d *ErrorDetail) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.Detail) == 0 || string(envelope.Detail) == "null" {
		return nil
	}

	if err := json.Unmarshal(envelope.Detail, &d.Text); err == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Detail, &d.Issues); err == nil {
		return nil
	}

	var withReason struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(envelope.Detail, &withReason); err != nil {
		return err
	}
	d.Text = withReason.Reason

	return nil
}

func (d ErrorDetail) MarshalJSON() ([]byte, error) {
	if len(d.Issues) > 0 {
		return json.Marshal(map[string]interface{}{"detail": d.Issues})
	}
	return json.Marshal(map[string]string{"detail": d.Text})
}

// Message is the human readable form of the detail, empty when there is none.
func (d ErrorDetail) Message() string {
	if d.Text != "" {
		return d.Text
	}
	msgs := make([]string, 0, len(d.Issues))
	for _, issue := range d.Issues {
		if issue.Msg != "" {
			msgs = append(msgs, issue.Msg)
		}
	}

	return strings.Join(msgs, "; ")
}
