// Package i18n provides the closed set of display locales and their label tables.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Locale identifies a supported display language.
type Locale string

// Supported locales.
const (
	English Locale = "en"
	French  Locale = "fr"
	Spanish Locale = "es"
)

// Default is used when no locale is requested.
const Default = English

// ErrUnknownLocale is returned for locales outside the supported set.
var ErrUnknownLocale = errors.New("unknown locale")

// Headings holds the section headings of one locale.
type Headings struct {
	Summary        string
	Experience     string
	Projects       string
	Education      string
	Certifications string
	Skills         string
	Contact        string
	Custom         string
}

// Labels is everything a renderer needs from a locale.
type Labels struct {
	Locale   Locale
	Headings Headings
	// Present replaces the end date of current entries.
	Present string
	// FullName and JobTitle are placeholders shown on screen when the fields are empty.
	FullName string
	JobTitle string
}

var tables = map[Locale]Labels{
	English: {
		Locale: English,
		Headings: Headings{
			Summary:        "Summary",
			Experience:     "Experience",
			Projects:       "Projects",
			Education:      "Education",
			Certifications: "Certifications",
			Skills:         "Skills",
			Contact:        "Contact",
			Custom:         "Additional",
		},
		Present:  "Present",
		FullName: "Your Name",
		JobTitle: "Job Title",
	},
	French: {
		Locale: French,
		Headings: Headings{
			Summary:        "Profil",
			Experience:     "Expérience",
			Projects:       "Projets",
			Education:      "Formation",
			Certifications: "Certifications",
			Skills:         "Compétences",
			Contact:        "Contact",
			Custom:         "Autres",
		},
		Present:  "Présent",
		FullName: "Votre nom",
		JobTitle: "Intitulé du poste",
	},
	Spanish: {
		Locale: Spanish,
		Headings: Headings{
			Summary:        "Perfil",
			Experience:     "Experiencia",
			Projects:       "Proyectos",
			Education:      "Educación",
			Certifications: "Certificaciones",
			Skills:         "Habilidades",
			Contact:        "Contacto",
			Custom:         "Adicional",
		},
		Present:  "Actualidad",
		FullName: "Tu nombre",
		JobTitle: "Puesto",
	},
}

// All returns the supported locales.
func All() []Locale {
	return []Locale{English, French, Spanish}
}

// Parse normalises s and checks it against the supported set. An empty string yields Default.
func Parse(s string) (Locale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Default, nil
	}
	// accept region-qualified tags such as fr-CA
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	l := Locale(s)
	if _, ok := tables[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLocale, s)
	}
	return l, nil
}

// Valid reports whether l is supported.
func (l Locale) Valid() bool {
	_, ok := tables[l]
	return ok
}

// For returns the labels of l.
func For(l Locale) (Labels, error) {
	labels, ok := tables[l]
	if !ok {
		return Labels{}, fmt.Errorf("%w: %q", ErrUnknownLocale, string(l))
	}
	return labels, nil
}

// MustFor is For for locales already validated.
func MustFor(l Locale) Labels {
	labels, err := For(l)
	if err != nil {
		panic(err)
	}
	return labels
}
