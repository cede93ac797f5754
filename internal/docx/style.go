package docx

import (
	"strconv"

	"github.com/abdellahzou/HiResume/internal/types"
)

// Style is the formatting chosen once per template family. Sizes are in half-points.
type Style struct {
	Font        string
	Accent      string
	NameSize    int
	HeadingSize int
	EntrySize   int
	Centered    bool
	SidebarFill string
}

// StyleFor returns the style of a template: serif for classic and executive, sans otherwise.
func StyleFor(id types.TemplateID) Style {
	s := Style{
		Font:        "Calibri",
		Accent:      "1E293B",
		NameSize:    48,
		HeadingSize: 24,
		EntrySize:   23,
	}
	if id.UsesSerif() {
		s.Font = "Georgia"
		s.Accent = "000000"
		s.NameSize = 44
		s.HeadingSize = 22
		s.Centered = true
	}
	if id.UsesSidebar() {
		s.SidebarFill = "F1F5F9"
	}
	return s
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
