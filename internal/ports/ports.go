package ports

import (
	"context"
	"io"

	"github.com/forPelevin/prclips/internal/types"
)

// ProjectLoader returns the XML text of a project file.
type ProjectLoader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// Renderer writes an extraction report in one output format.
type Renderer interface {
	Render(w io.Writer, rep types.Report) error
	Ext() string
	ContentType() string
}
