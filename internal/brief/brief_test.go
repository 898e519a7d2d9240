package brief

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlBrief = `
campaign_name: Summer Splash
target_audience: Gen Z
target_region: LATAM
campaign_message: campaign.summer.message
products:
  - name: Hydra Bottle
    description: Insulated steel water bottle
  - name: Solar Backpack
    description: Backpack with a built-in solar panel
`

const jsonBrief = `{
  "campaign_name": "Summer Splash",
  "target_audience": "Gen Z",
  "target_region": "LATAM",
  "campaign_message": "campaign.summer.message",
  "products": [
    {"name": "Hydra Bottle", "description": "Insulated steel water bottle"},
    {"name": "Solar Backpack", "description": "Backpack with a built-in solar panel"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFormatsAreInterchangeable(t *testing.T) {
	dir := t.TempDir()
	fromYAML, err := Load(writeFile(t, dir, "brief.yaml", yamlBrief))
	require.NoError(t, err)
	fromYML, err := Load(writeFile(t, dir, "brief.YML", yamlBrief))
	require.NoError(t, err)
	fromJSON, err := Load(writeFile(t, dir, "brief.Json", jsonBrief))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Equal(t, fromYAML, fromYML)
	assert.Equal(t, "Summer Splash", fromYAML.CampaignName)
	require.Len(t, fromYAML.Products, 2)
	assert.Equal(t, "Solar Backpack", fromYAML.Products[1].Name)
	assert.NoError(t, fromYAML.Validate())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "nope.yaml"), want: ErrNotFound},
		{name: "directory", path: dir, want: ErrNotFound},
		{name: "blank", path: writeFile(t, dir, "blank.json", "  \n\t "), want: ErrEmptyContent},
		{name: "unsupported", path: writeFile(t, dir, "brief.toml", "campaign_name = 'x'"), want: ErrUnsupportedFormat},
		{name: "bad json", path: writeFile(t, dir, "bad.json", "{not json"), want: ErrParse},
		{name: "bad yaml", path: writeFile(t, dir, "bad.yaml", "products: [unclosed"), want: ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadDoesNotValidate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "partial.json", `{"campaign_name": "Only a name"}`)
	b, err := Load(path)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Validate(), ErrValidation)
}

func TestValidate(t *testing.T) {
	valid := func() Brief {
		return Brief{
			CampaignName:    "c",
			TargetAudience:  "a",
			TargetRegion:    "r",
			CampaignMessage: "m",
			Products:        []Product{{Name: "p", Description: "d"}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Brief)
		field  string
	}{
		{name: "campaign", mutate: func(b *Brief) { b.CampaignName = " " }, field: "campaign_name"},
		{name: "audience", mutate: func(b *Brief) { b.TargetAudience = "" }, field: "target_audience"},
		{name: "region", mutate: func(b *Brief) { b.TargetRegion = "" }, field: "target_region"},
		{name: "message", mutate: func(b *Brief) { b.CampaignMessage = "" }, field: "campaign_message"},
		{name: "no products", mutate: func(b *Brief) { b.Products = nil }, field: "products"},
		{name: "product name", mutate: func(b *Brief) { b.Products[0].Name = "" }, field: "products[0].name"},
		{name: "product traversal", mutate: func(b *Brief) { b.Products[0].Name = "../../x" }, field: "products[0].name"},
		{name: "product separator", mutate: func(b *Brief) { b.Products[0].Name = "shoes/left" }, field: "products[0].name"},
		{name: "product dot", mutate: func(b *Brief) { b.Products[0].Name = "." }, field: "products[0].name"},
		{name: "second product dotdot", mutate: func(b *Brief) {
			b.Products = append(b.Products, Product{Name: "..", Description: "d"})
		}, field: "products[1].name"},
		{name: "product description", mutate: func(b *Brief) { b.Products[0].Description = "" }, field: "products[0].description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(&b)
			err := b.Validate()
			require.ErrorIs(t, err, ErrValidation)
			assert.True(t, strings.Contains(err.Error(), tt.field), err.Error())
		})
	}

	assert.NoError(t, valid().Validate())
}

func TestResolve(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "brief.yaml")
	assert.Equal(t, abs, Resolve(abs, "briefs"))
	assert.Equal(t, filepath.Join("custom", "brief.yaml"), Resolve("brief.yaml", "custom"))
	assert.Equal(t, filepath.Join(DefaultDir, "brief.yaml"), Resolve("brief.yaml", ""))
	assert.Equal(t, filepath.Join(wd, "sub", "brief.json"), Resolve("sub/brief.json", "briefs"))
}
