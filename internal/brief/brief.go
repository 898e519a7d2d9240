package brief

import (
	"errors"
	"fmt"
	"strings"

	"campaign-gen/internal/layout"
)

var (
	ErrNotFound          = errors.New("brief not found")
	ErrEmptyContent      = errors.New("brief is empty")
	ErrUnsupportedFormat = errors.New("unsupported brief format")
	ErrParse             = errors.New("failed to parse brief")
	ErrValidation        = errors.New("invalid brief")
)

type Product struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

type Brief struct {
	CampaignName    string    `json:"campaign_name" yaml:"campaign_name"`
	TargetAudience  string    `json:"target_audience" yaml:"target_audience"`
	TargetRegion    string    `json:"target_region" yaml:"target_region"`
	CampaignMessage string    `json:"campaign_message" yaml:"campaign_message"`
	Products        []Product `json:"products" yaml:"products"`
}

// Validate checks the schema of a decoded brief. Loading never calls it so the
// two steps can fail independently.
func (b Brief) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"campaign_name", b.CampaignName},
		{"target_audience", b.TargetAudience},
		{"target_region", b.TargetRegion},
		{"campaign_message", b.CampaignMessage},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}

	if len(b.Products) == 0 {
		return fmt.Errorf("%w: products must contain at least one entry", ErrValidation)
	}
	for i, p := range b.Products {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: products[%d].name is required", ErrValidation, i)
		}
		if !layout.ValidProductName(p.Name) {
			return fmt.Errorf("%w: products[%d].name %q must not contain path separators or be \".\" or \"..\"", ErrValidation, i, p.Name)
		}
		if strings.TrimSpace(p.Description) == "" {
			return fmt.Errorf("%w: products[%d].description is required", ErrValidation, i)
		}
	}
	return nil
}
