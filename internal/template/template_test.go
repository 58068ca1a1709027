package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tokens := Lex("Q: {{text:Front}} {{#Back}}b{{/Back}}{{^Extra}}none{{/Extra}}{{! note }}!")

	kinds := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenText, TokenField, TokenText, TokenSectionOpen, TokenText, TokenSectionClose,
		TokenInvertedOpen, TokenText, TokenSectionClose, TokenText,
	}, kinds)

	assert.Equal(t, "Front", tokens[1].Text)
	assert.Equal(t, []string{"text"}, tokens[1].Filters)
	assert.Equal(t, "Extra", tokens[6].Text)
	assert.Equal(t, "!", tokens[9].Text)
}

func TestLexUnterminatedTagIsText(t *testing.T) {
	tokens := Lex("before {{Front")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenText, tokens[0].Kind)
	assert.Equal(t, "before {{Front", tokens[0].Text)
}

func TestParseMalformed(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "unclosed section", src: "{{#Q}}{{Q}}"},
		{name: "close without open", src: "{{Q}}{{/Q}}"},
		{name: "mismatched close", src: "{{#Q}}{{^A}}x{{/Q}}{{/A}}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.ErrorIs(t, err, ErrMalformedConditional)
		})
	}
}

func TestParseNested(t *testing.T) {
	tree, err := Parse("{{#A}}<b>{{#B}}{{B}}{{/B}}</b>{{/A}}")
	require.NoError(t, err)
	require.Len(t, tree.Nodes, 1)

	outer, ok := tree.Nodes[0].(Conditional)
	require.True(t, ok)
	assert.Equal(t, "A", outer.Field)
	require.Len(t, outer.Children, 3)

	inner, ok := outer.Children[1].(Conditional)
	require.True(t, ok)
	assert.Equal(t, "B", inner.Field)
	assert.Equal(t, []string{"A", "B"}, tree.References())
}

func TestCheckFields(t *testing.T) {
	tree, err := Parse("{{Front}}<hr>{{FrontSide}} {{Tags}} {{#Missing}}x{{/Missing}}")
	require.NoError(t, err)

	err = tree.CheckFields([]string{"Front", "Back"})
	require.ErrorIs(t, err, ErrUnknownField)
	assert.Contains(t, err.Error(), "Missing")

	require.NoError(t, tree.CheckFields([]string{"Front", "Missing"}))
}

func TestAnalyze(t *testing.T) {
	testCases := []struct {
		name     string
		qfmt     string
		fields   []string
		expected Requirement
	}{
		{
			name:     "single field",
			qfmt:     "{{Q}}",
			fields:   []string{"Q", "A"},
			expected: Requirement{Kind: RequireAll, Fields: []int{0}},
		},
		{
			name:     "either of two conditional fields",
			qfmt:     "{{#Q}}{{Q}}{{/Q}}{{#A}}{{A}}{{/A}}",
			fields:   []string{"Q", "A"},
			expected: Requirement{Kind: RequireAny, Fields: []int{0, 1}},
		},
		{
			name:     "optional reverse",
			qfmt:     "{{#Add Reverse}}{{Back}}{{/Add Reverse}}",
			fields:   []string{"Front", "Back", "Add Reverse"},
			expected: Requirement{Kind: RequireAll, Fields: []int{1, 2}},
		},
		{
			name:     "type in the answer box is not content",
			qfmt:     "{{Front}}\n\n{{type:Back}}",
			fields:   []string{"Front", "Back"},
			expected: Requirement{Kind: RequireAll, Fields: []int{0}},
		},
		{
			name:     "cloze filter",
			qfmt:     "{{cloze:Text}}",
			fields:   []string{"Text", "Back Extra"},
			expected: Requirement{Kind: RequireAll, Fields: []int{0}},
		},
		{
			name:     "literal only",
			qfmt:     "What is on the other side?",
			fields:   []string{"Q", "A"},
			expected: Requirement{Kind: RequireNone},
		},
		{
			name:     "negated section shows field when other is empty",
			qfmt:     "{{^Q}}{{A}}{{/Q}}",
			fields:   []string{"Q", "A"},
			expected: Requirement{Kind: RequireAll, Fields: []int{1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := Parse(tc.qfmt)
			require.NoError(t, err)

			req, err := Analyze(tree, tc.fields)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, req)
		})
	}
}

func TestAnalyzeUnrenderable(t *testing.T) {
	// Each field only shows up inside a section keyed on another field, so any single
	// field on its own renders nothing while no single blank field empties the output.
	tree, err := Parse("{{#A}}{{B}}{{/A}}{{#B}}{{C}}{{/B}}{{#C}}{{A}}{{/C}}")
	require.NoError(t, err)

	_, err = Analyze(tree, []string{"A", "B", "C"})
	require.ErrorIs(t, err, ErrUnrenderable)
}

func TestRequirementSatisfied(t *testing.T) {
	values := map[int]bool{0: true, 1: false}
	nonEmpty := func(ord int) bool { return values[ord] }

	assert.True(t, Requirement{Kind: RequireNone}.Satisfied(nonEmpty))
	assert.True(t, Requirement{Kind: RequireAll, Fields: []int{0}}.Satisfied(nonEmpty))
	assert.False(t, Requirement{Kind: RequireAll, Fields: []int{0, 1}}.Satisfied(nonEmpty))
	assert.True(t, Requirement{Kind: RequireAny, Fields: []int{0, 1}}.Satisfied(nonEmpty))
	assert.False(t, Requirement{Kind: RequireAny, Fields: []int{1}}.Satisfied(nonEmpty))
}
