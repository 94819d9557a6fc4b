package projectfile

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
)

// maxProjectBytes caps the decompressed size of a project.
const maxProjectBytes = 512 << 20

type Adapter struct{}

func New() *Adapter { return &Adapter{} }

// Load reads a project file; gzip-compressed projects are inflated.
func (a *Adapter) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return Decode(b)
}

// Decode returns b unchanged unless it starts with the gzip magic bytes.
func Decode(b []byte) ([]byte, error) {
	if !isGzip(b) {
		return b, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("open gzip project: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxProjectBytes+1))
	if err != nil {
		return nil, fmt.Errorf("inflate project: %w", err)
	}
	if len(out) > maxProjectBytes {
		return nil, fmt.Errorf("inflate project: larger than %d bytes", maxProjectBytes)
	}
	return out, nil
}

func isGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}
