package linelex

import "strings"

// SourceCleaner is the source-cleanup external collaborator spec.md §1
// and §6 describe: it marks lines whose content must not be lexed,
// preserving line numbering so CodeLine indices still match the original
// file. Comments need no cleaning: Tokenize discards them itself (see
// package doc).
type SourceCleaner interface {
	// Clean returns src with its line count unchanged. hidden[i] reports
	// whether line i must be ignored; BuildCodeLines reports such lines
	// Empty and lexes nothing on them.
	Clean(src string) (cleaned string, hidden []bool)
}

// DefaultCleaner returns the heredoc-aware cleaner used outside of tests
// that want to exercise BuildCodeLines on raw, unclean input directly.
// It returns the text unchanged and marks each heredoc body, through its
// terminator line, hidden. Multi-line string literals are not detected.
func DefaultCleaner() SourceCleaner {
	return defaultCleaner{}
}

type defaultCleaner struct{}

// findHeredocTag matches a `<<~ID`, `<<-ID`, or `<<ID` heredoc tag,
// optionally quoted, anywhere on a line. It is intentionally narrow:
// recognizing every Ruby heredoc spelling would require a real parser,
// which is out of scope (spec.md §1).
func findHeredocTag(line string) (tag string, squiggly bool, ok bool) {
	idx := strings.Index(line, "<<")
	if idx < 0 {
		return "", false, false
	}
	rest := line[idx+2:]
	rest = strings.TrimPrefix(rest, "~")
	squiggly = len(line) > idx+2 && (line[idx+2] == '~' || line[idx+2] == '-')
	rest = strings.TrimPrefix(rest, "-")
	rest = strings.TrimSpace(rest)

	quote := byte(0)
	if len(rest) > 0 && (rest[0] == '"' || rest[0] == '\'') {
		quote = rest[0]
		rest = rest[1:]
	}

	end := 0
	for end < len(rest) && (isIdentCont(rest[end])) {
		end++
	}
	if end == 0 {
		return "", false, false
	}
	tag = rest[:end]
	if quote != 0 && (end >= len(rest) || rest[end] != quote) {
		return "", false, false
	}
	return tag, squiggly, true
}

// Clean implements SourceCleaner. It is a single forward scan: outside
// of a heredoc body it looks for an opening tag; once inside, it hides
// every line up to and including the line whose trimmed content equals
// the tag.
func (defaultCleaner) Clean(src string) (string, []bool) {
	lines := splitKeepingNewlines(src)
	hidden := make([]bool, len(lines))

	var inHeredoc bool
	var closeTag string
	var squiggly bool

	for i, raw := range lines {
		text := strings.TrimRight(raw, "\r\n")
		if inHeredoc {
			trimmed := text
			if squiggly {
				trimmed = strings.TrimSpace(text)
			}
			hidden[i] = true
			if trimmed == closeTag {
				inHeredoc = false
			}
			continue
		}
		if tag, sq, ok := findHeredocTag(text); ok {
			inHeredoc = true
			closeTag = tag
			squiggly = sq
		}
	}

	return strings.Join(lines, ""), hidden
}
