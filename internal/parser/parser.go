// Package parser extracts knols from markdown files written as Q:/A:/C: blocks.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/knolpack/internal/domain"
)

const (
	questionPrefix = "Q:"
	answerPrefix   = "A:"
	contextPrefix  = "C:"
	separator      = "---"
)

type state int

const (
	seeking state = iota
	readingQuestion
	readingAnswer
	readingContext
)

// ParseFile reads the markdown file at path and extracts its knols. Each knol records
// path as its source.
func ParseFile(path string) ([]domain.Knol, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	knols, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for i := range knols {
		knols[i].Source = path
	}
	return knols, nil
}

// Parse reads from r and extracts all knols. A knol ends at a "---" line, at the next
// "Q:" line or at the end of input. Blocks without a question are dropped.
func Parse(r io.Reader) ([]domain.Knol, error) {
	p := &knolParser{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.line(scanner.Text(), lineNo)
	}
	p.finishKnol()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.knols, nil
}

type knolParser struct {
	knols   []domain.Knol
	current domain.Knol
	block   []string
	state   state
}

func (p *knolParser) line(line string, lineNo int) {
	if line == separator {
		p.finishKnol()
		return
	}

	next, content, ok := prefixed(line)
	if !ok {
		if p.state != seeking {
			p.block = append(p.block, line)
		}
		return
	}

	if next == readingQuestion && p.state != seeking {
		p.finishKnol()
	}
	p.flushBlock()
	if next == readingQuestion {
		p.current.Line = lineNo
	}
	p.state = next
	p.block = append(p.block, content)
}

// prefixed reports which block a line starts and the content after its prefix.
func prefixed(line string) (state, string, bool) {
	var next state
	var prefix string
	switch {
	case strings.HasPrefix(line, questionPrefix):
		next, prefix = readingQuestion, questionPrefix
	case strings.HasPrefix(line, answerPrefix):
		next, prefix = readingAnswer, answerPrefix
	case strings.HasPrefix(line, contextPrefix):
		next, prefix = readingContext, contextPrefix
	default:
		return seeking, "", false
	}
	return next, strings.TrimPrefix(line[len(prefix):], " "), true
}

func (p *knolParser) flushBlock() {
	if len(p.block) == 0 {
		return
	}
	content := strings.TrimRight(strings.Join(p.block, "\n"), "\n")
	switch p.state {
	case readingQuestion:
		p.current.Question = content
	case readingAnswer:
		p.current.Answer = content
	case readingContext:
		p.current.Context = content
	}
	p.block = nil
}

func (p *knolParser) finishKnol() {
	p.flushBlock()
	if p.current.Question != "" {
		p.knols = append(p.knols, p.current)
	}
	p.current = domain.Knol{}
	p.state = seeking
}
