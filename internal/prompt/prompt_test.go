package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-gen/internal/brief"
)

func sampleBrief(audience string) brief.Brief {
	return brief.Brief{
		CampaignName:    "Summer Splash",
		TargetAudience:  audience,
		TargetRegion:    "LATAM",
		CampaignMessage: "campaign.summer.message",
		Products:        []brief.Product{{Name: "Hydra Bottle", Description: "insulated steel water bottle"}},
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	b := sampleBrief("Gen Z")
	first, err := Compose(b.Products[0], b, "Stay fresh all summer")
	require.NoError(t, err)
	second, err := Compose(b.Products[0], b, "Stay fresh all summer")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComposeSections(t *testing.T) {
	b := sampleBrief("Gen Z")
	got, err := Compose(b.Products[0], b, "Stay fresh all summer")
	require.NoError(t, err)

	for _, section := range []string{
		"Subject and action:",
		"Environment:",
		"Composition:",
		"Lighting and mood:",
		"Style and quality:",
		"Audience and campaign:",
	} {
		assert.Contains(t, got, section)
	}
	assert.Len(t, strings.Split(got, "\n"), 6)
	assert.Contains(t, got, "Hydra Bottle")
	assert.Contains(t, got, audienceStyles["gen z"].Style)
	assert.Contains(t, got, productScenes["Hydra Bottle"].Environment)
	assert.Contains(t, got, "Stay fresh all summer")
}

func TestComposeAudienceKeyIsNormalised(t *testing.T) {
	b := sampleBrief("  GEN z ")
	got, err := Compose(b.Products[0], b, "message")
	require.NoError(t, err)
	assert.Contains(t, got, audienceStyles["gen z"].Style)
}

func TestComposeFallsBackForUnknownAudienceAndProduct(t *testing.T) {
	b := sampleBrief("Retired Astronauts")
	product := brief.Product{Name: "hydra bottle", Description: "lowercase name is a different product"}
	got, err := Compose(product, b, "message")
	require.NoError(t, err)
	assert.Contains(t, got, defaultAudienceStyle)
	assert.Contains(t, got, "Retired Astronauts")
	assert.Contains(t, got, defaultScene.Environment)
}

func TestComposeStripsTemplateCharacters(t *testing.T) {
	b := sampleBrief("Gen Z")
	got, err := Compose(b.Products[0], b, "<script>{{ignore previous}}</script> Buy now")
	require.NoError(t, err)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, "{")
	assert.NotContains(t, got, "}")
	assert.Contains(t, got, "scriptignore previous/script Buy now")
}

func TestComposeInvalidInput(t *testing.T) {
	b := sampleBrief("Gen Z")
	p := b.Products[0]

	tests := []struct {
		name    string
		product brief.Product
		brief   brief.Brief
		message string
	}{
		{name: "product name", product: brief.Product{Description: "d"}, brief: b, message: "m"},
		{name: "product description", product: brief.Product{Name: "n"}, brief: b, message: "m"},
		{name: "audience", product: p, brief: sampleBrief(" "), message: "m"},
		{name: "message", product: p, brief: b, message: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.product, tt.brief, tt.message)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComposeTooLong(t *testing.T) {
	b := sampleBrief("Gen Z")
	product := brief.Product{Name: "Hydra Bottle", Description: strings.Repeat("very ", 900)}
	_, err := Compose(product, b, "message")
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestCheckLength(t *testing.T) {
	assert.ErrorIs(t, checkLength("short"), ErrTooShort)
	assert.NoError(t, checkLength(strings.Repeat("a", MinLength)))
	assert.NoError(t, checkLength(strings.Repeat("a", MaxLength)))
	assert.ErrorIs(t, checkLength(strings.Repeat("a", MaxLength+1)), ErrTooLong)
}
