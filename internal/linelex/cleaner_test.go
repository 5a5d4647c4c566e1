package linelex

import "testing"

func TestDefaultCleanerHidesHeredocBody(t *testing.T) {
	t.Parallel()
	src := "x = <<~SQL\n  select 1\n  from t\nSQL\ny = 2\n"
	cleaned, hidden := DefaultCleaner().Clean(src)

	lines := splitKeepingNewlines(cleaned)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	want := []bool{false, true, true, true, false}
	if len(hidden) != len(want) {
		t.Fatalf("hidden = %v, want len %d", hidden, len(want))
	}
	for i, w := range want {
		if hidden[i] != w {
			t.Errorf("hidden[%d] = %v, want %v", i, hidden[i], w)
		}
	}
}

func TestDefaultCleanerPlainLinesUnhidden(t *testing.T) {
	t.Parallel()
	src := "a = 1\nb = 2\n"
	_, hidden := DefaultCleaner().Clean(src)
	for i, h := range hidden {
		if h {
			t.Errorf("hidden[%d] = true, want false for plain source", i)
		}
	}
}

func TestBuildCodeLinesWithDefaultCleanerSuppressesHeredocBody(t *testing.T) {
	t.Parallel()
	src := "x = <<~SQL\n  end\nSQL\n"
	lines := BuildCodeLines(src, DefaultCleaner())
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !lines[1].Empty || lines[1].Visible {
		t.Fatalf("heredoc body line should be empty and hidden, got %+v", lines[1])
	}
	if !lines[1].LexDiff.Balanced() {
		// The literal "end" inside the heredoc body must not register as a
		// pair event of any kind.
		t.Fatalf("heredoc body should not contribute lex events, got %+v", lines[1].LexDiff)
	}
}
