// Package layout owns the on-disk naming of product assets and generated outputs.
package layout

import (
	"path/filepath"
	"regexp"
	"strings"

	"campaign-gen/internal/ratio"
)

const outputExt = ".png"

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeCampaignName maps every non-alphanumeric character to '_' and lowercases the rest.
func SanitizeCampaignName(name string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(name, "_"))
}

// ValidProductName reports whether name can be used as a single directory
// level: non-blank, no path separator, and not "." or "..".
func ValidProductName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "." || trimmed == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// ProductAssetDir is <assetsRoot>/<product>.
func ProductAssetDir(assetsRoot, product string) string {
	return filepath.Join(assetsRoot, product)
}

// OutputDir is <outputsRoot>/<sanitized campaign>/<product>.
func OutputDir(outputsRoot, campaign, product string) string {
	return filepath.Join(outputsRoot, SanitizeCampaignName(campaign), product)
}

// OutputPath is the single canonical file for a (campaign, product, ratio) triple.
func OutputPath(outputsRoot, campaign, product string, r ratio.Ratio) string {
	return filepath.Join(OutputDir(outputsRoot, campaign, product), r.FileToken()+outputExt)
}
