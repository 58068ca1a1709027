package template

import "fmt"

// Node is an element of a parsed template tree.
type Node interface {
	node()
}

// Text is literal markup.
type Text struct {
	Value string
}

// Replacement substitutes a field value, optionally through filters.
type Replacement struct {
	Field   string
	Filters []string
}

// Conditional renders Children only when Field is non-empty, or only when it is
// empty if Negated is set.
type Conditional struct {
	Field    string
	Negated  bool
	Children []Node
}

// ShowsContent reports whether the replacement puts the field's text into the output.
// A type-in-the-answer box ({{type:Field}}) does not.
func (r Replacement) ShowsContent() bool {
	for _, f := range r.Filters {
		if f == "type" {
			return false
		}
	}
	return true
}

func (Text) node()        {}
func (Replacement) node() {}
func (Conditional) node() {}

// Tree is a parsed template format string.
type Tree struct {
	Nodes []Node
}

// Parse builds the node tree of a format string. Unbalanced sections are reported as
// ErrMalformedConditional.
func Parse(src string) (*Tree, error) {
	type frame struct {
		cond  Conditional
		nodes []Node
		pos   int
	}

	root := []Node{}
	var stack []frame

	emit := func(n Node) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		top := &stack[len(stack)-1]
		top.nodes = append(top.nodes, n)
	}

	for _, tok := range Lex(src) {
		switch tok.Kind {
		case TokenText:
			emit(Text{Value: tok.Text})
		case TokenField:
			emit(Replacement{Field: tok.Text, Filters: tok.Filters})
		case TokenSectionOpen, TokenInvertedOpen:
			stack = append(stack, frame{
				cond: Conditional{Field: tok.Text, Negated: tok.Kind == TokenInvertedOpen},
				pos:  tok.Pos,
			})
		case TokenSectionClose:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: {{/%s}} at offset %d has no opening section", ErrMalformedConditional, tok.Text, tok.Pos)
			}
			top := stack[len(stack)-1]
			if top.cond.Field != tok.Text {
				return nil, fmt.Errorf("%w: {{/%s}} at offset %d closes section %q opened at offset %d",
					ErrMalformedConditional, tok.Text, tok.Pos, top.cond.Field, top.pos)
			}
			stack = stack[:len(stack)-1]
			top.cond.Children = top.nodes
			emit(top.cond)
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("%w: section %q opened at offset %d is never closed", ErrMalformedConditional, top.cond.Field, top.pos)
	}
	return &Tree{Nodes: root}, nil
}

// References returns every field name the tree mentions, in order of first appearance.
func (t *Tree) References() []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case Replacement:
				if !seen[n.Field] {
					seen[n.Field] = true
					names = append(names, n.Field)
				}
			case Conditional:
				if !seen[n.Field] {
					seen[n.Field] = true
					names = append(names, n.Field)
				}
				walk(n.Children)
			}
		}
	}
	walk(t.Nodes)
	return names
}

// Renders reports whether rendering the tree emits the content of at least one field,
// given which fields are non-empty.
func (t *Tree) Renders(nonEmpty func(field string) bool) bool {
	return renders(t.Nodes, nonEmpty)
}

func renders(nodes []Node, nonEmpty func(string) bool) bool {
	for _, n := range nodes {
		switch n := n.(type) {
		case Replacement:
			if n.ShowsContent() && nonEmpty(n.Field) {
				return true
			}
		case Conditional:
			if nonEmpty(n.Field) != n.Negated && renders(n.Children, nonEmpty) {
				return true
			}
		}
	}
	return false
}
