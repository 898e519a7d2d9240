package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, files map[string]string) *Catalog {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return New(Options{Dir: dir})
}

func TestTranslateNestedYAML(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"en.yaml": "campaign:\n  summer:\n    message: Stay fresh all summer\n",
	})
	assert.Equal(t, "Stay fresh all summer", c.Translate("campaign.summer.message", "en"))
}

func TestTranslateJSONAndFlatKeys(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"es.json": `{"campaign.summer.message": "Mantente fresco todo el verano"}`,
	})
	assert.Equal(t, "Mantente fresco todo el verano", c.Translate("campaign.summer.message", "es"))
}

func TestTranslateBaseLanguageFallback(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"pt.yml": "greeting: Olá\n",
	})
	msg, ok := c.Lookup("greeting", "pt-BR")
	assert.True(t, ok)
	assert.Equal(t, "Olá", msg)
}

func TestTranslateMissReturnsKey(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"en.yaml": "known: yes\n",
	})

	_, ok := c.Lookup("Buy one get one free", "en")
	assert.False(t, ok)
	assert.Equal(t, "Buy one get one free", c.Translate("Buy one get one free", "en"))
	assert.Equal(t, "anything", c.Translate("anything", "fr"), "missing catalog file is a miss")
}

func TestBrokenCatalogIsAMiss(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"en.yaml": "key: [unclosed\n",
	})
	_, ok := c.Lookup("key", "en")
	assert.False(t, ok)
}

func TestEmptyLangUsesDefault(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"en.yaml": "hello: Hello\n",
	})
	assert.Equal(t, "Hello", c.Translate("hello", ""))
}

func TestTranslateTOMLTables(t *testing.T) {
	c := newCatalog(t, map[string]string{
		"de.toml": "[campaign.summer]\nmessage = \"Den ganzen Sommer cool bleiben\"\n",
	})
	assert.Equal(t, "Den ganzen Sommer cool bleiben", c.Translate("campaign.summer.message", "de"))
}
