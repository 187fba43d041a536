package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"-", true},
		{" N.A. ", true},
		{"n.a.", true},
		{"N/A", true},
		{"na", false},
		{"--", false},
		{"Acme", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Corp", "acme-corp"},
		{"Beta BV", "beta-bv"},
		{"Zeta / Grid", "zeta-grid"},
		{"Netz Niederösterreich / EVN", "netz-niedersterreich-evn"},
		{"Mijn & Co. (NL)", "mijn--co-nl"},
		{"already-slug-42", "already-slug-42"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestHasURL(t *testing.T) {
	assert.True(t, HasURL("https://acme.example"))
	assert.True(t, HasURL("http://beta.example"))
	assert.True(t, HasURL("see http"))
	assert.False(t, HasURL("www.acme.example"))
	assert.False(t, HasURL("HTTP://upper.example"))
	assert.False(t, HasURL(""))
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "at", NormalizeCountry("AT"))
	assert.Equal(t, " nl ", NormalizeCountry(" NL "))
	assert.Equal(t, "zz", NormalizeCountry("Zz"))
}

func TestConnectorTable(t *testing.T) {
	table := NewConnectorTable(map[string]string{
		"PT": "pt-e-redes",
		"at": "at-custom",
	})

	assert.Equal(t, "pt-e-redes", table.Lookup("pt"))
	assert.Equal(t, "at-custom", table.Lookup("at"))
	assert.Equal(t, "us-green-button", table.Lookup("ca"))
	assert.Equal(t, "zz", table.Lookup("zz"))

	// Overrides do not leak into the defaults.
	assert.Equal(t, "at-eda", DefaultRegionConnectors["at"])
	assert.Equal(t, "at-eda", NewConnectorTable(nil).Lookup("at"))
}

func TestConnectorTable_Defaults(t *testing.T) {
	table := NewConnectorTable(nil)
	for country, connector := range map[string]string{
		"at": "at-eda",
		"be": "be-fluvius",
		"de": "de-eta",
		"dk": "dk-energinet",
		"es": "es-datadis",
		"fi": "fi-fingrid",
		"fr": "fr-enedis",
		"nl": "nl-mijn-aansluiting",
		"us": "us-green-button",
		"ca": "us-green-button",
	} {
		assert.Equal(t, connector, table.Lookup(country))
	}
}

func TestIsBlankRow(t *testing.T) {
	assert.True(t, IsBlankRow(nil))
	assert.True(t, IsBlankRow([]string{"", " ", "\t"}))
	assert.False(t, IsBlankRow([]string{"", "x"}))
}
