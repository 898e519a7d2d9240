// Package i18n resolves campaign message keys from per-language catalog files
// stored as <dir>/<lang>.yaml, <lang>.yml, <lang>.json or <lang>.toml.
package i18n

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const DefaultLang = "en"

var catalogExts = []string{".yaml", ".yml", ".json", ".toml"}

type Options struct {
	Dir    string
	Logger *slog.Logger
}

type Catalog struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	langs map[string]map[string]string
}

func New(opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{
		dir:    opts.Dir,
		logger: logger,
		langs:  make(map[string]map[string]string),
	}
}

// Translate returns the message for key, or key itself when no catalog has it.
func (c *Catalog) Translate(key, lang string) string {
	if msg, ok := c.Lookup(key, lang); ok {
		return msg
	}
	return key
}

// Lookup checks the exact language first and then its base language
// ("pt-BR" falls back to "pt").
func (c *Catalog) Lookup(key, lang string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	for _, candidate := range candidates(lang) {
		if msg, ok := c.messages(candidate)[key]; ok && strings.TrimSpace(msg) != "" {
			return msg, true
		}
	}
	return "", false
}

func (c *Catalog) messages(lang string) map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msgs, ok := c.langs[lang]; ok {
		return msgs
	}
	msgs, err := c.load(lang)
	if err != nil {
		c.logger.Warn("could not load locale catalog", "lang", lang, "dir", c.dir, "err", err)
		msgs = map[string]string{}
	}
	c.langs[lang] = msgs
	return msgs
}

func (c *Catalog) load(lang string) (map[string]string, error) {
	for _, ext := range catalogExts {
		path := filepath.Join(c.dir, lang+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return parse(data, ext)
	}
	return map[string]string{}, nil
}

// parse decodes a catalog. The YAML decoder also reads the JSON files.
// Nested maps and TOML tables are flattened into dotted keys.
func parse(data []byte, ext string) (map[string]string, error) {
	out := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	var raw map[string]any
	decode := yaml.Unmarshal
	if ext == ".toml" {
		decode = toml.Unmarshal
	}
	if err := decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	flatten("", raw, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

func candidates(lang string) []string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = DefaultLang
	}
	out := []string{lang}
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		out = append(out, lang[:i])
	}
	return out
}
