package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/forPelevin/prclips/internal/types"
)

// Table prints an aligned terminal table; extra ranges go on continuation lines.
type Table struct{}

func (Table) Ext() string         { return "txt" }
func (Table) ContentType() string { return "text/plain; charset=utf-8" }

func (Table) Render(w io.Writer, rep types.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, c := range rep.Clips {
		first := ""
		if len(c.Timecodes) > 0 {
			first = c.Timecodes[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.Type, c.Source, c.ID, first)
		for _, tc := range c.Timecodes[min(1, len(c.Timecodes)):] {
			fmt.Fprintf(tw, "\t\t\t\t%s\n", tc)
		}
	}
	return tw.Flush()
}
