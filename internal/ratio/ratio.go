package ratio

import (
	"fmt"
	"strings"
)

// Ratio is a width:height token such as "16:9".
type Ratio string

const (
	Square        Ratio = "1:1"
	Story         Ratio = "9:16"
	Widescreen    Ratio = "16:9"
	Landscape     Ratio = "4:3"
	Portrait      Ratio = "3:4"
	Photo         Ratio = "3:2"
	PhotoPortrait Ratio = "2:3"
)

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var sizes = map[Ratio]Size{
	Square:        {Width: 2048, Height: 2048},
	Story:         {Width: 1536, Height: 2688},
	Widescreen:    {Width: 2688, Height: 1536},
	Landscape:     {Width: 2304, Height: 1792},
	Portrait:      {Width: 1792, Height: 2304},
	Photo:         {Width: 2496, Height: 1664},
	PhotoPortrait: {Width: 1664, Height: 2496},
}

var order = []Ratio{Square, Story, Widescreen, Landscape, Portrait, Photo, PhotoPortrait}

// Default returns the ratios used when none are configured.
func Default() []Ratio {
	return []Ratio{Square, Story, Widescreen}
}

// Supported lists every known ratio in table order.
func Supported() []Ratio {
	return append([]Ratio(nil), order...)
}

func (r Ratio) String() string {
	return string(r)
}

// FileToken is the ratio as used in file names: "16:9" -> "16x9".
func (r Ratio) FileToken() string {
	return strings.ReplaceAll(string(r), ":", "x")
}

func (r Ratio) Size() (Size, error) {
	size, ok := sizes[r]
	if !ok {
		return Size{}, unsupported(string(r))
	}
	return size, nil
}

func (r Ratio) Valid() bool {
	_, ok := sizes[r]
	return ok
}

// Parse normalises a token like " 16 : 9 " and checks it against the size table.
func Parse(value string) (Ratio, error) {
	trimmed := strings.TrimSpace(value)
	parts := strings.SplitN(trimmed, ":", 2)
	if len(parts) == 2 {
		trimmed = strings.TrimSpace(parts[0]) + ":" + strings.TrimSpace(parts[1])
	}
	r := Ratio(trimmed)
	if !r.Valid() {
		return "", unsupported(value)
	}
	return r, nil
}

// ParseList parses every entry and keeps the given order, dropping duplicates.
func ParseList(values []string) ([]Ratio, error) {
	out := make([]Ratio, 0, len(values))
	seen := make(map[Ratio]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		r, err := Parse(v)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func unsupported(value string) error {
	names := make([]string, 0, len(order))
	for _, r := range order {
		names = append(names, string(r))
	}
	return fmt.Errorf("unsupported aspect ratio %q (supported: %s)", value, strings.Join(names, ", "))
}
