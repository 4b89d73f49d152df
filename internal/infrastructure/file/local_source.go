package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Upload is a file handed to the import pipeline from somewhere other than an
// HTTP request.
type Upload struct {
	io.ReadCloser
	Filename string
	Size     int64
}

type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (*Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.New("import source " + path + " is a directory")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return &Upload{ReadCloser: f, Filename: filepath.Base(path), Size: info.Size()}, nil
}
