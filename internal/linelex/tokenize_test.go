package linelex

import (
	"testing"

	"github.com/blocksuspect/blocksuspect/internal/lexpair"
)

func TestTokenizeBrackets(t *testing.T) {
	t.Parallel()
	got := Tokenize("a = [1, {2 => (3)}]")
	want := []PairEvent{
		{Kind: lexpair.Bracket, Role: lexpair.Open},
		{Kind: lexpair.Brace, Role: lexpair.Open},
		{Kind: lexpair.Paren, Role: lexpair.Open},
		{Kind: lexpair.Paren, Role: lexpair.Close},
		{Kind: lexpair.Brace, Role: lexpair.Close},
		{Kind: lexpair.Bracket, Role: lexpair.Close},
	}
	assertEvents(t, got, want)
}

func TestTokenizeBlockOpenersAlwaysOpen(t *testing.T) {
	t.Parallel()
	got := Tokenize("x.each do |y|")
	assertEvents(t, got, []PairEvent{{Kind: lexpair.DoEnd, Role: lexpair.Open}})
}

func TestTokenizeLeadingOpenerOnlyAsFirstToken(t *testing.T) {
	t.Parallel()
	got := Tokenize("if x")
	assertEvents(t, got, []PairEvent{{Kind: lexpair.IfEnd, Role: lexpair.Open}})

	got = Tokenize("return 1 if x")
	assertEvents(t, got, nil)
}

func TestTokenizeBareEndIsKeywordEnd(t *testing.T) {
	t.Parallel()
	got := Tokenize("end")
	assertEvents(t, got, []PairEvent{{Kind: lexpair.KeywordEnd, Role: lexpair.Close}})
}

func TestTokenizeIgnoresCommentTail(t *testing.T) {
	t.Parallel()
	got := Tokenize("do_thing() # end missing here")
	assertEvents(t, got, []PairEvent{
		{Kind: lexpair.Paren, Role: lexpair.Open},
		{Kind: lexpair.Paren, Role: lexpair.Close},
	})
}

func TestTokenizeIgnoresBracketsInsideStrings(t *testing.T) {
	t.Parallel()
	got := Tokenize(`puts "[not a bracket]"`)
	assertEvents(t, got, nil)
}

func TestTokenizeHandlesEscapedQuote(t *testing.T) {
	t.Parallel()
	got := Tokenize(`x = "a\"b"`)
	assertEvents(t, got, nil)
}

func TestTokenizeUnterminatedStringEmitsOpen(t *testing.T) {
	t.Parallel()
	got := Tokenize(`x = "unterminated`)
	assertEvents(t, got, []PairEvent{{Kind: lexpair.StringLiteral, Role: lexpair.Open}})
}

func TestTokenizeQuestionBangNotKeyword(t *testing.T) {
	t.Parallel()
	got := Tokenize("valid?")
	assertEvents(t, got, nil)
}

func TestContainsOnlyComment(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"  # comment":  true,
		"#comment":     true,
		"x = 1 # tail": false,
		"":             false,
		"   ":          false,
	}
	for line, want := range cases {
		if got := ContainsOnlyComment(line); got != want {
			t.Errorf("ContainsOnlyComment(%q) = %v, want %v", line, got, want)
		}
	}
}

func assertEvents(t *testing.T, got, want []PairEvent) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}
