package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/forPelevin/prclips/internal/types"
)

// CSV writes one row per clip; a clip's ranges share one newline-separated cell.
type CSV struct{}

func (CSV) Ext() string         { return "csv" }
func (CSV) ContentType() string { return "text/csv; charset=utf-8" }

func (CSV) Render(w io.Writer, rep types.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range rep.Clips {
		row := []string{c.Name, string(c.Type), string(c.Source), c.ID, strings.Join(c.Timecodes, "\n")}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
