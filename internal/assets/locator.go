package assets

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"campaign-gen/internal/layout"
	"campaign-gen/internal/ratio"
)

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

type Options struct {
	AssetsDir  string
	OutputsDir string
	Logger     *slog.Logger
}

// Locator answers read-only questions about the assets and outputs trees.
// Filesystem errors are logged and treated as "nothing there".
type Locator struct {
	assetsDir  string
	outputsDir string
	logger     *slog.Logger
}

type presence int

const (
	absent presence = iota
	present
	unknown
)

func New(opts Options) *Locator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Locator{
		assetsDir:  opts.AssetsDir,
		outputsDir: opts.OutputsDir,
		logger:     logger,
	}
}

// FindProductAssets lists reference images directly inside the product's asset
// folder as absolute paths in lexical order. Only the first entry is used as a
// style reference, so the order is part of the contract.
func (l *Locator) FindProductAssets(product string) []string {
	if !layout.ValidProductName(product) {
		l.logger.Warn("product name is not a valid folder name, skipping asset lookup", "product", product)
		return []string{}
	}
	dir := layout.ProductAssetDir(l.assetsDir, product)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Info("no asset folder for product", "product", product, "dir", dir)
		} else {
			l.logger.Warn("could not read asset folder", "product", product, "dir", dir, "err", err)
		}
		return []string{}
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// AssetExists reports whether the canonical output for the pair is already on disk.
func (l *Locator) AssetExists(campaign, product string, r ratio.Ratio) bool {
	path := layout.OutputPath(l.outputsDir, campaign, product, r)
	switch state, err := lookup(path); state {
	case present:
		return true
	case unknown:
		l.logger.Warn("could not check existing output, treating as absent",
			"product", product, "ratio", r.String(), "path", path, "err", err)
		return false
	default:
		return false
	}
}

func lookup(path string) (presence, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absent, nil
		}
		return unknown, err
	}
	if info.IsDir() {
		return unknown, errors.New("output path is a directory")
	}
	return present, nil
}

func isImage(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}
