package render

import (
	"fmt"
	"strings"

	"github.com/forPelevin/prclips/internal/ports"
)

const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatTable = "table"
)

var header = []string{"Name", "Type", "Source", "ID", "Timecodes"}

// New returns the renderer for format.
func New(format string) (ports.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatCSV, "":
		return CSV{}, nil
	case FormatJSON:
		return JSON{}, nil
	case FormatTable:
		return Table{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want csv, json or table)", format)
	}
}

var (
	_ ports.Renderer = CSV{}
	_ ports.Renderer = JSON{}
	_ ports.Renderer = Table{}
)
