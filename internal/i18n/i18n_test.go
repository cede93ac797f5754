package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Locale
		wantErr bool
	}{
		{input: "en", want: English},
		{input: "FR", want: French},
		{input: "es-MX", want: Spanish},
		{input: "", want: Default},
		{input: "de", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLocale)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFor_EveryLocaleComplete(t *testing.T) {
	for _, l := range All() {
		labels, err := For(l)
		require.NoError(t, err)
		assert.Equal(t, l, labels.Locale)
		assert.NotEmpty(t, labels.Present)
		assert.NotEmpty(t, labels.FullName)
		assert.NotEmpty(t, labels.JobTitle)
		h := labels.Headings
		for _, s := range []string{h.Summary, h.Experience, h.Projects, h.Education, h.Certifications, h.Skills, h.Contact, h.Custom} {
			assert.NotEmpty(t, s, "locale %s", l)
		}
	}
}

func TestFor_PresentTokens(t *testing.T) {
	assert.Equal(t, "Present", MustFor(English).Present)
	assert.Equal(t, "Présent", MustFor(French).Present)
	assert.Equal(t, "Actualidad", MustFor(Spanish).Present)
}

func TestFor_Unknown(t *testing.T) {
	_, err := For("xx")
	assert.ErrorIs(t, err, ErrUnknownLocale)
	assert.Panics(t, func() { MustFor("xx") })
}
