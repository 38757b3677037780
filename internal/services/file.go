package services

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/adminui/internal/models"
)

// FileSource reads the roster payload from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource creates a [FileSource] for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Name() string { return f.path }

func (f *FileSource) Fetch(ctx context.Context) ([]models.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read member file: %w", err)
	}
	return DecodeMembers(data)
}
