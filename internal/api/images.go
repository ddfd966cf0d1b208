package api

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ImageFetcher streams a backend image into w. *Client implements it.
type ImageFetcher interface {
	FetchImage(ctx context.Context, name string, w io.Writer) (int64, error)
}

// SaveImage downloads the image called name into the file at path,
// creating its directory. A failed download leaves no file behind.
func SaveImage(ctx context.Context, f ImageFetcher, name, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save image: %w", err)
		}
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	if _, err := f.FetchImage(ctx, name, out); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}
