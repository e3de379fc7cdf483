package api

import "github.com/samcharles93/ggmlcheck/internal/report"

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}

type CheckRequest struct {
	Paths    []string `json:"paths"`
	Extended bool     `json:"extended"`
}

type CheckResult struct {
	Path   string         `json:"path"`
	Header *report.Record `json:"header,omitempty"`
	Error  *ResponseError `json:"error,omitempty"`
}

type CheckResponse struct {
	RequestID string        `json:"request_id"`
	Results   []CheckResult `json:"results"`
	Failed    int           `json:"failed"`
}
