package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"campaign-gen/internal/layout"
	"campaign-gen/internal/ratio"
)

var (
	ErrInvalidInput = errors.New("invalid save input")
	ErrIntegrity    = errors.New("output integrity check failed")
)

type Options struct {
	OutputsDir string
	Logger     *slog.Logger
}

// Writer persists generated images under the outputs tree. A file only appears
// under its final name after its size has been verified.
type Writer struct {
	outputsDir string
	logger     *slog.Logger
	stat       func(string) (fs.FileInfo, error)
}

// Option customizes a Writer during construction.
type Option func(*Writer)

// WithStat overrides the size probe used for verification.
func WithStat(stat func(string) (fs.FileInfo, error)) Option {
	return func(w *Writer) {
		w.stat = stat
	}
}

func New(opts Options, extra ...Option) *Writer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w := &Writer{
		outputsDir: opts.OutputsDir,
		logger:     logger,
		stat:       os.Stat,
	}
	for _, opt := range extra {
		opt(w)
	}
	return w
}

// Save writes data to the canonical output path and returns that path.
func (w *Writer) Save(campaign, product string, r ratio.Ratio, data []byte) (string, error) {
	switch {
	case strings.TrimSpace(campaign) == "":
		return "", fmt.Errorf("%w: campaign name is empty", ErrInvalidInput)
	case strings.TrimSpace(product) == "":
		return "", fmt.Errorf("%w: product name is empty", ErrInvalidInput)
	case !layout.ValidProductName(product):
		return "", fmt.Errorf("%w: product name %q is not a single path element", ErrInvalidInput, product)
	case strings.TrimSpace(string(r)) == "":
		return "", fmt.Errorf("%w: ratio is empty", ErrInvalidInput)
	case len(data) == 0:
		return "", fmt.Errorf("%w: image data is empty", ErrInvalidInput)
	}

	dir := layout.OutputDir(w.outputsDir, campaign, product)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("output: ensure dir %s: %w", dir, err)
	}
	final := layout.OutputPath(w.outputsDir, campaign, product, r)

	tmp, err := os.CreateTemp(dir, "."+r.FileToken()+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("output: dir %s is not writable: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	n, err := tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("output: write %s: %w", final, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("output: sync %s: %w", final, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("output: close %s: %w", final, err)
	}

	info, err := w.stat(tmpPath)
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", ErrIntegrity, final, err)
	}
	if size := info.Size(); size == 0 || size != int64(len(data)) || n != len(data) {
		return "", fmt.Errorf("%w: %s has %d bytes on disk, expected %d", ErrIntegrity, final, size, len(data))
	}

	if err := os.Rename(tmpPath, final); err != nil {
		return "", fmt.Errorf("output: rename into %s: %w", filepath.Base(final), err)
	}
	committed = true

	w.logger.Debug("output saved", "path", final, "bytes", len(data))
	return final, nil
}
