package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockTags end a line of extracted text.
var blockTags = map[string]bool{
	"address": true, "article": true, "br": true, "div": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "ol": true, "p": true,
	"section": true, "table": true, "tr": true, "ul": true,
}

// HTMLExtractor reads the visible text of an HTML page. When the page has a
// #resume-content element only that element is read.
type HTMLExtractor struct{}

// Extract implements Extractor.
func (HTMLExtractor) Extract(_ context.Context, data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	root := doc.Find("#resume-content").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var out strings.Builder
	writeText(&out, root)
	return out.String(), nil
}

func writeText(out *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		switch {
		case name == "#text":
			out.WriteString(s.Text())
		case blockTags[name]:
			out.WriteByte('\n')
			writeText(out, s)
			out.WriteByte('\n')
		default:
			writeText(out, s)
			// chips and links sit side by side without whitespace
			out.WriteByte(' ')
		}
	})
}
