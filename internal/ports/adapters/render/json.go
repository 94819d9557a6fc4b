package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/forPelevin/prclips/internal/types"
)

type JSON struct{}

func (JSON) Ext() string         { return "json" }
func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(w io.Writer, rep types.Report) error {
	if rep.Clips == nil {
		rep.Clips = []types.ClipRecord{}
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
