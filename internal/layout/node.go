// Package layout renders a resume into a layout tree using one of six templates,
// and emits that tree as HTML whose sizes follow the auto-fit variables.
package layout

// Kind determines how a node is laid out and which element it becomes in HTML.
type Kind string

// Node kinds.
const (
	KindPage    Kind = "page"
	KindHeader  Kind = "header"
	KindRow     Kind = "row"    // children side by side
	KindColumn  Kind = "column" // vertical region inside a row
	KindSection Kind = "section"
	KindEntry   Kind = "entry"
	KindName    Kind = "name"
	KindHeading Kind = "heading"
	KindText    Kind = "text"
	KindList    Kind = "list"
	KindBullet  Kind = "bullet"
	KindChips   Kind = "chips" // inline, wrapping
	KindChip    Kind = "chip"
	KindLink    Kind = "link"
	KindRule    Kind = "rule"
)

// Family is a font family class.
type Family string

// Font families.
const (
	Sans  Family = "sans"
	Serif Family = "serif"
)

// Style holds the visual attributes of a node. Sizes are in CSS pixels at scale 1.
type Style struct {
	Size       float64
	LineHeight float64
	Bold       bool
	Italic     bool
	Upper      bool
	Align      string
	Family     Family
	Color      string
	Background string
	Border     bool // bottom border
}

// Node is one element of the layout tree.
type Node struct {
	Kind  Kind
	Class string
	Text  string
	Href  string
	Style Style
	// Gap is the space above the node, multiplied by the spacing factor.
	Gap float64
	// Pad is the inner padding on every side. It is not scaled.
	Pad float64
	// Width is the share of a row taken by a column, in (0,1].
	Width    float64
	Children []*Node
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth-first. Returning false skips the children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every node with the given class.
func (n *Node) Find(class string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Class == class {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Texts returns the text of every descendant leaf, in document order.
func (n *Node) Texts() []string {
	var out []string
	n.Walk(func(c *Node) bool {
		if c.Text != "" {
			out = append(out, c.Text)
		}
		return true
	})
	return out
}
