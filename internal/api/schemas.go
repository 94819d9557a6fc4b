package api

import "github.com/forPelevin/prclips/internal/types"

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

// ExtractResponse is the JSON body of POST /extract.
type ExtractResponse = types.Report

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	CodeBadRequest  = "BAD_REQUEST"
	CodeBusy        = "BUSY"
	CodeParse       = "PARSE_ERROR"
	CodeNoTimelines = "NO_TIMELINES"
	CodeTooLarge    = "TOO_LARGE"
	CodeInternal    = "INTERNAL_ERROR"
)

const (
	csvDownloadName = "premiere_sequence.csv"
	multipartField  = "file"
	multipartMaxMem = 32 << 20
)
