package models

import (
	"bytes"
	"encoding/json"
)

// ExplainResponse is the JSON body returned by the explain and review endpoints.
type ExplainResponse struct {
	Explanation string     `json:"explanation"`
	SourceMode  SourceMode `json:"source_mode"`
	Note        string     `json:"note,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// ExplainRequest is the JSON body accepted by the explain and review endpoints.
// Code stays raw so a non-string value can be told apart from a missing one.
type ExplainRequest struct {
	Code     json.RawMessage `json:"code"`
	Language string          `json:"language,omitempty"`
	Path     string          `json:"path,omitempty"`
	Question string          `json:"question,omitempty"`
}

// CodeText returns the code as a string, and false when it is absent or not a JSON string.
func (r ExplainRequest) CodeText() (string, bool) {
	trimmed := bytes.TrimSpace(r.Code)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var code string
	if err := json.Unmarshal(trimmed, &code); err != nil {
		return "", false
	}
	return code, true
}
