package parser //nolint:revive // intentional: does not conflict with go/parser in internal package

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminated indicates a quoted string, quoted identifier or block
// comment that never closes.
var ErrUnterminated = errors.New("unterminated quote or comment")

// ErrUnterminatedTrigger indicates a CREATE TRIGGER body without its closing END.
var ErrUnterminatedTrigger = errors.New("unterminated trigger body")

// Statement is one SQL statement of a script.
type Statement struct {
	Text  string   // Statement text including its terminating semicolon, trimmed
	Words []string // Bare words outside quotes and comments, upper-cased
	Start int      // Byte offset of the statement's first word in the script
}

// Keyword returns the i-th bare word of the statement, or "" when absent.
func (s Statement) Keyword(i int) string {
	if i < 0 || i >= len(s.Words) {
		return ""
	}

	return s.Words[i]
}

// ParseResult holds the statements of a script and the original SQL.
type ParseResult struct {
	Stmts []Statement
	SQL   string
}

// Parse splits a SQLite script into statements. Semicolons inside quotes,
// comments and CREATE TRIGGER ... BEGIN ... END bodies do not end a statement.
// Returns an empty result for empty or comment-only input.
func Parse(sql string) (*ParseResult, error) {
	sp := &splitter{src: sql}

	if err := sp.run(); err != nil {
		return nil, fmt.Errorf("parsing SQL: %w", err)
	}

	return &ParseResult{Stmts: sp.stmts, SQL: sql}, nil
}

type splitter struct {
	src   string
	stmts []Statement

	textStart int
	words     []string
	wordStart int // -1 when not inside a word
	inTrigger bool
	depth     int
}

func (sp *splitter) run() error {
	sp.wordStart = -1
	src := sp.src

	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '-' && i+1 < len(src) && src[i+1] == '-':
			sp.flushWord(i)

			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				i = len(src)
			} else {
				i += end + 1
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			sp.flushWord(i)

			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return fmt.Errorf("%w: block comment at offset %d", ErrUnterminated, i)
			}

			i += end + 4
		case c == '\'' || c == '"' || c == '`':
			sp.flushWord(i)

			end, ok := closingQuote(src, i, c)
			if !ok {
				return fmt.Errorf("%w: %c at offset %d", ErrUnterminated, c, i)
			}

			i = end + 1
		case c == '[':
			sp.flushWord(i)

			end := strings.IndexByte(src[i:], ']')
			if end < 0 {
				return fmt.Errorf("%w: [ at offset %d", ErrUnterminated, i)
			}

			i += end + 1
		case isWordByte(c):
			if sp.wordStart < 0 {
				sp.wordStart = i
			}

			i++
		case c == ';':
			sp.flushWord(i)

			i++
			if sp.inTrigger && sp.depth > 0 {
				continue
			}

			sp.emit(i)
		default:
			sp.flushWord(i)

			i++
		}
	}

	sp.flushWord(len(src))

	if sp.inTrigger && sp.depth > 0 {
		return ErrUnterminatedTrigger
	}

	sp.emit(len(src))

	return nil
}

// flushWord ends the word in progress at offset end, if any.
func (sp *splitter) flushWord(end int) {
	if sp.wordStart < 0 {
		return
	}

	if len(sp.words) == 0 {
		sp.textStart = sp.wordStart
	}

	word := strings.ToUpper(sp.src[sp.wordStart:end])
	sp.wordStart = -1
	sp.words = append(sp.words, word)

	if !sp.inTrigger {
		sp.inTrigger = isCreateTrigger(sp.words)

		return
	}

	switch word {
	case "BEGIN", "CASE":
		sp.depth++
	case "END":
		if sp.depth > 0 {
			sp.depth--
		}
	}
}

// emit closes the statement ending at offset end. Leading comments are not
// part of the statement text; statements without any bare word (blank or
// comment-only) are dropped.
func (sp *splitter) emit(end int) {
	if len(sp.words) > 0 {
		sp.stmts = append(sp.stmts, Statement{
			Text:  strings.TrimSpace(sp.src[sp.textStart:end]),
			Words: sp.words,
			Start: sp.textStart,
		})
	}

	sp.words = nil
	sp.inTrigger = false
	sp.depth = 0
}

func isCreateTrigger(words []string) bool {
	switch len(words) {
	case 2:
		return words[0] == "CREATE" && words[1] == "TRIGGER"
	case 3:
		return words[0] == "CREATE" && (words[1] == "TEMP" || words[1] == "TEMPORARY") && words[2] == "TRIGGER"
	default:
		return false
	}
}

// closingQuote returns the offset of the quote closing the one at open.
// A doubled quote character is an escaped quote.
func closingQuote(src string, open int, q byte) (int, bool) {
	for j := open + 1; j < len(src); j++ {
		if src[j] != q {
			continue
		}

		if j+1 < len(src) && src[j+1] == q {
			j++

			continue
		}

		return j, true
	}

	return 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}
