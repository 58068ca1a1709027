package domain

// Knol is a question/answer entry read from a markdown source.
type Knol struct {
	Question string
	Answer   string
	Context  string
	// Source is the file the knol was read from and Line the line its question starts on.
	Source string
	Line   int
}
