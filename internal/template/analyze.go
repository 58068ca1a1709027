package template

import "fmt"

// specialFields are filled in by the receiving application at render time and never
// belong to a model.
var specialFields = map[string]bool{
	"FrontSide": true,
	"Tags":      true,
	"Type":      true,
	"Deck":      true,
	"Subdeck":   true,
	"Card":      true,
	"CardFlag":  true,
	"CardID":    true,
}

// IsSpecialField reports whether name is a built-in field rather than a model field.
func IsSpecialField(name string) bool {
	return specialFields[name]
}

// CheckFields returns ErrUnknownField for the first reference that is neither a
// special field nor one of fields.
func (t *Tree) CheckFields(fields []string) error {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	for _, ref := range t.References() {
		if !known[ref] && !IsSpecialField(ref) {
			return fmt.Errorf("%w: %q", ErrUnknownField, ref)
		}
	}
	return nil
}

// RequirementKind is the combination rule of a Requirement.
type RequirementKind int

const (
	// RequireNone means the template produces a card for every note.
	RequireNone RequirementKind = iota
	// RequireAll means every listed field must be non-empty.
	RequireAll
	// RequireAny means at least one listed field must be non-empty.
	RequireAny
)

func (k RequirementKind) String() string {
	switch k {
	case RequireAll:
		return "all"
	case RequireAny:
		return "any"
	default:
		return "none"
	}
}

// Requirement is the card-generation precondition of a question format.
// Fields holds model field positions in ascending order.
type Requirement struct {
	Kind   RequirementKind
	Fields []int
}

// Satisfied reports whether a note whose field emptiness is given by nonEmpty gets a card.
func (r Requirement) Satisfied(nonEmpty func(ord int) bool) bool {
	switch r.Kind {
	case RequireAll:
		for _, ord := range r.Fields {
			if !nonEmpty(ord) {
				return false
			}
		}
		return true
	case RequireAny:
		for _, ord := range r.Fields {
			if nonEmpty(ord) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Analyze computes the requirement of a question format over the model fields.
//
// A field is required (RequireAll) when blanking it alone leaves no field content in the
// output. If no field is required on its own, the fields that produce content when they
// are the only non-empty one form a RequireAny set. A tree that substitutes no model
// field at all is RequireNone.
func Analyze(t *Tree, fields []string) (Requirement, error) {
	if !substitutesAny(t.Nodes, fields) {
		return Requirement{Kind: RequireNone}, nil
	}

	position := make(map[string]int, len(fields))
	for i, f := range fields {
		position[f] = i
	}
	isField := func(name string) bool {
		_, ok := position[name]
		return ok
	}

	var all []int
	for i, blank := range fields {
		present := func(name string) bool { return isField(name) && name != blank }
		if !t.Renders(present) {
			all = append(all, i)
		}
	}
	if len(all) > 0 {
		return Requirement{Kind: RequireAll, Fields: all}, nil
	}

	var anyOf []int
	for i, only := range fields {
		present := func(name string) bool { return name == only }
		if t.Renders(present) {
			anyOf = append(anyOf, i)
		}
	}
	if len(anyOf) > 0 {
		return Requirement{Kind: RequireAny, Fields: anyOf}, nil
	}
	return Requirement{}, ErrUnrenderable
}

func substitutesAny(nodes []Node, fields []string) bool {
	for _, n := range nodes {
		switch n := n.(type) {
		case Replacement:
			if !n.ShowsContent() {
				continue
			}
			for _, f := range fields {
				if f == n.Field {
					return true
				}
			}
		case Conditional:
			if substitutesAny(n.Children, fields) {
				return true
			}
		}
	}
	return false
}
