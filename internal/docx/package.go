package docx

import (
	"archive/zip"
	"bytes"
	"time"
)

// MIMEType is the media type of a .docx file.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// zipEpoch is the timestamp of every part, so identical input yields identical bytes.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// A4 in twips, with half-inch margins.
const (
	pageWidth   = 11906
	pageHeight  = 16838
	pageMargin  = 720
	textWidth   = pageWidth - 2*pageMargin
	sidebarTwip = textWidth / 3
)

type part struct {
	name string
	data string
}

// pack writes the parts into a zip archive in the given order.
func pack(parts []part) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return nil, &CompileError{Part: p.name, Message: "failed to create part", Cause: err}
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, &CompileError{Part: p.name, Message: "failed to write part", Cause: err}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &CompileError{Part: "package", Message: "failed to finish archive", Cause: err}
	}
	return buf.Bytes(), nil
}

func documentXML(b *body) string {
	return xmlHeader + `<w:document ` + wordNS + `><w:body>` + b.String() +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720" w:header="0" w:footer="0" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`
}

func stylesXML(s Style) string {
	font := attr(s.Font)
	return xmlHeader + `<w:styles ` + wordNS + `>` +
		`<w:docDefaults><w:rPrDefault><w:rPr>` +
		`<w:rFonts w:ascii="` + font + `" w:hAnsi="` + font + `" w:cs="` + font + `" w:eastAsia="` + font + `"/>` +
		`<w:sz w:val="21"/><w:szCs w:val="21"/></w:rPr></w:rPrDefault>` +
		`<w:pPrDefault><w:pPr><w:spacing w:after="40" w:line="264" w:lineRule="auto"/></w:pPr></w:pPrDefault>` +
		`</w:docDefaults>` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
		`<w:rPr><w:b/><w:color w:val="` + attr(s.Accent) + `"/><w:sz w:val="` + itoa(s.NameSize) + `"/></w:rPr></w:style>` +
		`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
		`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="80"/><w:outlineLvl w:val="0"/></w:pPr>` +
		`<w:rPr><w:b/><w:caps/><w:color w:val="` + attr(s.Accent) + `"/><w:sz w:val="` + itoa(s.HeadingSize) + `"/></w:rPr></w:style>` +
		`</w:styles>`
}
