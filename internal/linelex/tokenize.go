// Package linelex tokenizes one source line at a time into lexical pair
// events and builds the CodeLine sequence spec.md §4.2 describes. Its
// Tokenize function is the "lexer adapter" external collaborator from
// spec.md §6: a stateless per-line scan. Bare "end" keywords can't be
// attributed to a specific opener from a single line alone, so Tokenize
// reports them tagged lexpair.KeywordEnd; BuildCodeLines resolves that
// tag against a document-wide keyword stack before it memoizes each
// line's lexpair.Diff. That resolution step is this package's state,
// not Tokenize's — Tokenize itself never looks past the line it is
// given.
package linelex

import (
	"strings"

	"github.com/blocksuspect/blocksuspect/internal/lexpair"
)

// PairEvent is one lexical pair marker recognized within a single line.
type PairEvent struct {
	Kind lexpair.PairKind
	Role lexpair.Role
}

// blockOpeners unconditionally open their matching *-end pair kind
// wherever the word appears on a line (Ruby never uses these as
// statement modifiers).
var blockOpeners = map[string]lexpair.PairKind{
	"do":     lexpair.DoEnd,
	"def":    lexpair.DefEnd,
	"class":  lexpair.ClassEnd,
	"module": lexpair.ModuleEnd,
	"begin":  lexpair.BeginEnd,
}

// leadingOpeners only open their matching *-end pair kind when the word
// is the first token scanned on the line; elsewhere they are statement
// modifiers ("return unless done") and open nothing. Distinguishing the
// two forms precisely would require a real grammar, which spec.md's
// non-goals explicitly exclude ("being a general parser"); the
// leading-token heuristic matches every scenario in spec.md §8.
var leadingOpeners = map[string]lexpair.PairKind{
	"if":     lexpair.IfEnd,
	"unless": lexpair.IfEnd,
	"while":  lexpair.IfEnd,
	"until":  lexpair.IfEnd,
	"case":   lexpair.CaseEnd,
}

var bracketPairs = map[byte][2]lexpair.PairKind{
	'(': {lexpair.Paren, lexpair.Paren},
	'{': {lexpair.Brace, lexpair.Brace},
	'[': {lexpair.Bracket, lexpair.Bracket},
}

// Tokenize scans one logical line (without its trailing newline) and
// returns the pair events it contains, in left-to-right order. Line
// comments ('#' outside a string) consume the remainder of the line.
// A bare "end" word is reported as a Close event of lexpair.KeywordEnd;
// resolving it to the specific kind it closes is BuildCodeLines's job.
func Tokenize(line string) []PairEvent {
	var events []PairEvent
	inString := false
	var quote byte
	firstToken := true

	for i := 0; i < len(line); i++ {
		c := line[i]

		if inString {
			switch c {
			case '\\':
				i++ // skip the escaped character, if any
			case quote:
				inString = false
			}
			continue
		}

		switch {
		case c == '#':
			i = len(line) // comment runs to end of line
		case c == '"' || c == '\'':
			inString = true
			quote = c
			firstToken = false
		case c == '(' || c == '{' || c == '[':
			kinds := bracketPairs[c]
			events = append(events, PairEvent{Kind: kinds[0], Role: lexpair.Open})
			firstToken = false
		case c == ')':
			events = append(events, PairEvent{Kind: lexpair.Paren, Role: lexpair.Close})
			firstToken = false
		case c == '}':
			events = append(events, PairEvent{Kind: lexpair.Brace, Role: lexpair.Close})
			firstToken = false
		case c == ']':
			events = append(events, PairEvent{Kind: lexpair.Bracket, Role: lexpair.Close})
			firstToken = false
		case isIdentStart(c):
			word, next := scanWord(line, i)
			wasFirst := firstToken
			firstToken = false
			i = next - 1 // for loop's i++ lands exactly on next
			events = append(events, wordEvents(word, wasFirst)...)
		case c == ' ' || c == '\t':
			// whitespace does not end a line's "first token" window
		default:
			firstToken = false
		}
	}

	if inString {
		events = append(events, PairEvent{Kind: lexpair.StringLiteral, Role: lexpair.Open})
	}
	return events
}

func wordEvents(word string, isFirstToken bool) []PairEvent {
	if word == "end" {
		return []PairEvent{{Kind: lexpair.KeywordEnd, Role: lexpair.Close}}
	}
	if kind, ok := blockOpeners[word]; ok {
		return []PairEvent{{Kind: kind, Role: lexpair.Open}}
	}
	if isFirstToken {
		if kind, ok := leadingOpeners[word]; ok {
			return []PairEvent{{Kind: kind, Role: lexpair.Open}}
		}
	}
	return nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// scanWord returns the identifier core starting at i (a trailing ? or !
// per Ruby method-name convention is consumed but excluded from word, so
// it never spuriously matches a keyword) and the index just past it.
func scanWord(line string, i int) (word string, next int) {
	start := i
	for i < len(line) && isIdentCont(line[i]) {
		i++
	}
	word = line[start:i]
	if i < len(line) && (line[i] == '?' || line[i] == '!') {
		i++
	}
	return word, i
}

// ContainsOnlyComment reports whether line, after its leading
// whitespace, starts with a line comment. Blank lines report false.
func ContainsOnlyComment(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "#")
}
