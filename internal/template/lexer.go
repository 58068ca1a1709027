package template

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// TokenKind identifies what a Token stands for.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenField
	TokenSectionOpen
	TokenInvertedOpen
	TokenSectionClose
)

// Token is one lexical element of a template format string.
type Token struct {
	Kind TokenKind
	// Text holds the literal text for TokenText and the field name otherwise.
	Text string
	// Filters holds the filter chain of a field substitution, e.g. "cloze" for {{cloze:Text}}.
	Filters []string
	// Pos is the byte offset of the token in the source.
	Pos int
}

type state int

const (
	inText state = iota
	inTag
)

// Lex splits a format string into literal text, field substitutions and section markers.
// An unterminated "{{" and everything after it is kept as literal text. Comments
// ({{!...}}) are dropped.
func Lex(src string) []Token {
	var tokens []Token
	current := inText
	pos := 0
	tagStart := 0

	for pos <= len(src) {
		switch current {
		case inText:
			next := strings.Index(src[pos:], openDelim)
			if next < 0 {
				tokens = appendText(tokens, src[pos:], pos)
				return tokens
			}
			tokens = appendText(tokens, src[pos:pos+next], pos)
			tagStart = pos + next
			pos = tagStart + len(openDelim)
			current = inTag
		case inTag:
			end := strings.Index(src[pos:], closeDelim)
			if end < 0 {
				tokens = appendText(tokens, src[tagStart:], tagStart)
				return tokens
			}
			if tok, ok := tagToken(src[pos:pos+end], tagStart); ok {
				tokens = append(tokens, tok)
			}
			pos += end + len(closeDelim)
			current = inText
		}
	}
	return tokens
}

func appendText(tokens []Token, text string, pos int) []Token {
	if text == "" {
		return tokens
	}
	// Merge with a preceding text token so dropped comments do not split literals.
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenText {
		tokens[n-1].Text += text
		return tokens
	}
	return append(tokens, Token{Kind: TokenText, Text: text, Pos: pos})
}

func tagToken(inner string, pos int) (Token, bool) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Token{Kind: TokenText, Text: openDelim + closeDelim, Pos: pos}, true
	}

	switch inner[0] {
	case '!':
		return Token{}, false
	case '#':
		return Token{Kind: TokenSectionOpen, Text: strings.TrimSpace(inner[1:]), Pos: pos}, true
	case '^':
		return Token{Kind: TokenInvertedOpen, Text: strings.TrimSpace(inner[1:]), Pos: pos}, true
	case '/':
		return Token{Kind: TokenSectionClose, Text: strings.TrimSpace(inner[1:]), Pos: pos}, true
	}

	parts := strings.Split(inner, ":")
	name := strings.TrimSpace(parts[len(parts)-1])
	var filters []string
	for _, f := range parts[:len(parts)-1] {
		filters = append(filters, strings.TrimSpace(f))
	}
	return Token{Kind: TokenField, Text: name, Filters: filters, Pos: pos}, true
}
