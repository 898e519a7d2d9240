package ratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Ratio
	}{
		{in: "1:1", want: Square},
		{in: " 16 : 9 ", want: Widescreen},
		{in: "9:16", want: Story},
		{in: "2:3", want: PhotoPortrait},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejectsUnknownAndListsSupported(t *testing.T) {
	_, err := Parse("21:9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "21:9")
	for _, r := range Supported() {
		assert.Contains(t, err.Error(), string(r))
	}
}

func TestParseListKeepsOrderAndDropsDuplicates(t *testing.T) {
	got, err := ParseList([]string{"16:9", "1:1", "", "16:9"})
	require.NoError(t, err)
	assert.Equal(t, []Ratio{Widescreen, Square}, got)
}

func TestDefaultIsFirstThree(t *testing.T) {
	assert.Equal(t, Supported()[:3], Default())
}

func TestSizeAndFileToken(t *testing.T) {
	size, err := Widescreen.Size()
	require.NoError(t, err)
	assert.Greater(t, size.Width, size.Height)
	assert.Equal(t, "16x9", Widescreen.FileToken())

	_, err = Ratio("5:4").Size()
	assert.Error(t, err)
}
