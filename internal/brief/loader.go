package brief

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultDir is where bare brief file names are looked up.
const DefaultDir = "briefs"

// Resolve maps a user supplied brief reference to a file path. Absolute paths
// are kept, paths with a separator are taken relative to the working directory
// and bare file names are looked up in briefsDir.
func Resolve(path, briefsDir string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.ContainsRune(path, '/') || strings.ContainsRune(path, filepath.Separator) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return filepath.Clean(path)
	}
	if briefsDir == "" {
		briefsDir = DefaultDir
	}
	return filepath.Join(briefsDir, path)
}

// Load reads and decodes a brief. The format is chosen by file extension only.
func Load(path string) (Brief, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Brief{}, fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return Brief{}, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Brief{}, fmt.Errorf("%w: read %s: %v", ErrNotFound, path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data according to ext (".json", ".yaml" or ".yml").
func Parse(data []byte, ext string) (Brief, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Brief{}, ErrEmptyContent
	}

	var b Brief
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &b); err != nil {
			return Brief{}, fmt.Errorf("%w: decode json: %w", ErrParse, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return Brief{}, fmt.Errorf("%w: decode yaml: %w", ErrParse, err)
		}
	default:
		return Brief{}, fmt.Errorf("%w: %q (expected .json, .yaml or .yml)", ErrUnsupportedFormat, ext)
	}
	return b, nil
}
