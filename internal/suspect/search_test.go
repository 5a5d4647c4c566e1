package suspect

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/blocksuspect/blocksuspect/internal/refparser"
	"github.com/blocksuspect/blocksuspect/internal/testutil"
)

// TestSearchGoldenScenarios runs the spec.md §8 end-to-end scenarios
// (and a couple of regression fixtures) through Search against the
// native backend and checks the reported ranges against the recorded
// golden fixtures in testdata/suspect.
func TestSearchGoldenScenarios(t *testing.T) {
	t.Parallel()
	cases, err := testutil.SuspectGoldenCases()
	if err != nil {
		t.Fatalf("SuspectGoldenCases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no suspect golden cases found")
	}

	for _, c := range cases {
		c := c
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()
			src := string(testutil.ReadFile(t, c.InputPath))
			want := parseRanges(t, string(testutil.ReadFile(t, c.ExpectedPath)))

			got, err := Search(context.Background(), refparser.Native(), src)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			assertRangesEqual(t, got, want)
		})
	}
}

func TestSearchAlreadyValidReturnsNil(t *testing.T) {
	t.Parallel()
	got, err := Search(context.Background(), refparser.Native(), "def foo\nend\n")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil ranges for already-valid input, got %+v", got)
	}
}

func TestSearchEmptyInputReturnsNil(t *testing.T) {
	t.Parallel()
	got, err := Search(context.Background(), refparser.Native(), "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil ranges for empty input, got %+v", got)
	}
}

func TestSearchAllBlankInputReturnsNil(t *testing.T) {
	t.Parallel()
	got, err := Search(context.Background(), refparser.Native(), "\n\n  \n# comment only\n")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil ranges for all-blank input, got %+v", got)
	}
}

func TestSearchResultRangesAreDisjointAndSorted(t *testing.T) {
	t.Parallel()
	src := "def a\n  1\ndef b\n  2\n"
	got, err := Search(context.Background(), refparser.Native(), src)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].EndLine >= got[i].StartLine {
			t.Fatalf("ranges not disjoint/sorted: %+v", got)
		}
	}
}

func parseRanges(t *testing.T, raw string) []BlockRange {
	t.Helper()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []BlockRange
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "-", 2)
		if len(parts) != 2 {
			t.Fatalf("malformed range fixture line %q", line)
		}
		start, err := strconv.Atoi(parts[0])
		if err != nil {
			t.Fatalf("malformed range start %q: %v", line, err)
		}
		end, err := strconv.Atoi(parts[1])
		if err != nil {
			t.Fatalf("malformed range end %q: %v", line, err)
		}
		out = append(out, BlockRange{StartLine: start, EndLine: end})
	}
	return out
}

func assertRangesEqual(t *testing.T, got, want []BlockRange) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d ranges %v, want %d ranges %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("range %d: got %s, want %s", i, fmt.Sprint(got[i]), fmt.Sprint(want[i]))
		}
	}
}
