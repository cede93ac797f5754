package rendering

import "strings"

// EscapeLaTeX escapes characters with special meaning in LaTeX.
// Special characters: \ { } $ & % # ^ _ ~ and the < > | that OT1 fonts misprint.
// Line breaks become spaces; callers split multi-line text beforehand.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '<':
			b.WriteString(`\textless{}`)
		case '>':
			b.WriteString(`\textgreater{}`)
		case '|':
			b.WriteString(`\textbar{}`)
		case '\r', '\n', '\t':
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// EscapeURL prepares a URL for the first argument of \href, where only
// the characters that break argument parsing need a backslash.
func EscapeURL(url string) string {
	var b strings.Builder
	b.Grow(len(url))
	for _, r := range url {
		switch r {
		case '%', '#', '{', '}', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case ' ', '\r', '\n', '\t':
			b.WriteString(`\%20`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
