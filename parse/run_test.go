package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/streamparse/stream"
)

func TestAllDigitsEndToEnd(t *testing.T) {
	matches, err := All(context.Background(), runeSource("123"), OneOrMore(digit()))
	if err != nil {
		t.Fatalf("All error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("match count = %d, want 1", len(matches))
	}
	m := matches[0]
	if string(m.Value) != "123" || m.Index != 0 || m.Length != 3 {
		t.Errorf("match = (%q, %d, %d), want (\"123\", 0, 3)", string(m.Value), m.Index, m.Length)
	}
}

func TestEachSkipsNonMatches(t *testing.T) {
	matches, err := All(context.Background(), runeSource("a12b3"), OneOrMore(digit()))
	if err != nil {
		t.Fatalf("All error = %v", err)
	}
	type match struct {
		Value string
		Index int
	}
	var got []match
	for _, m := range matches {
		got = append(got, match{Value: string(m.Value), Index: m.Index})
	}
	want := []match{
		{Value: "12", Index: 1},
		{Value: "3", Index: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestEachStopsWhenCallbackReturnsFalse(t *testing.T) {
	count := 0
	err := Each(context.Background(), runeSource("1 2 3"), digit(), func(Match[rune]) bool {
		count++
		return false
	})
	if err != nil {
		t.Fatalf("Each error = %v", err)
	}
	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}

func TestEachZeroLengthMatchMakesProgress(t *testing.T) {
	matches, err := All(context.Background(), runeSource("ab"), Epsilon[rune]("e"))
	if err != nil {
		t.Fatalf("All error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count = %d, want 2 (one per position)", len(matches))
	}
	for i, m := range matches {
		if m.Index != i || m.Length != 0 {
			t.Errorf("match[%d] = (index %d, length %d), want (%d, 0)", i, m.Index, m.Length, i)
		}
	}
}

func TestRequiredFailureEndToEnd(t *testing.T) {
	matches, err := All(context.Background(), runeSource("a"), digit().Required("expected a digit"))
	if len(matches) != 0 {
		t.Errorf("match count = %d, want 0", len(matches))
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parse.Error", err)
	}
	if perr.Index != 0 {
		t.Errorf("error index = %d, want 0", perr.Index)
	}
	if perr.Error() != "parse failed at index 0: expected a digit" {
		t.Errorf("error text = %q", perr.Error())
	}
}

func TestRequiredInsideGrammarReportsStartPosition(t *testing.T) {
	// The digit is required after the colon; the grammar begins matching at
	// index 0 but the required part begins at index 1.
	grammar := Then(Literal(':'), digit().Required("digit after colon"))
	_, err := All(context.Background(), runeSource(":x"), grammar)
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *parse.Error", err)
	}
	if perr.Index != 1 {
		t.Errorf("error index = %d, want 1", perr.Index)
	}
}

func TestRequiredErrFactory(t *testing.T) {
	custom := errors.New("custom failure")
	p := RequiredErr(digit(), func(index int) error { return custom })
	_, err := All(context.Background(), runeSource("x"), p)
	if !errors.Is(err, custom) {
		t.Errorf("error = %v, want custom", err)
	}
}

func TestAllProducerErrorAfterMatches(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan stream.Item[rune], 3)
	ch <- stream.Item[rune]{Value: '1'}
	ch <- stream.Item[rune]{Value: ' '}
	ch <- stream.Item[rune]{Err: boom}
	close(ch)

	matches, err := All(context.Background(), stream.FromItems(ch), digit())
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if len(matches) != 1 || matches[0].Value != '1' {
		t.Errorf("matches before failure = %v, want ['1']", matches)
	}
}

func TestEachContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Each(ctx, runeSource("123"), digit(), func(Match[rune]) bool { return true })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestEachAsyncSource(t *testing.T) {
	ch := make(chan rune)
	go func() {
		for _, r := range "7 8" {
			ch <- r
		}
		close(ch)
	}()

	matches, err := All(context.Background(), stream.FromChannel(ch), digit())
	if err != nil {
		t.Fatalf("All error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("match count = %d, want 2", len(matches))
	}
}

func TestResultsAmbiguous(t *testing.T) {
	p := AmbiguousGroup(Literal('('), Literal(')'))
	rs, err := Results(context.Background(), runeSource("(a(b)c)"), p)
	if err != nil {
		t.Fatalf("Results error = %v", err)
	}
	var got []string
	for _, r := range rs {
		got = append(got, string(r.Value))
	}
	if diff := cmp.Diff([]string{"b", "a(b)c"}, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestNonGreedyAtTopLevelCommitsShortest(t *testing.T) {
	// Run is the final continuation: the lookahead offer is accepted as-is
	// and the scan resumes after it.
	matches, err := All(context.Background(), runeSource("12"), Repeat(digit(), Quantity{Min: 1, Max: -1, NonGreedy: true}))
	if err != nil {
		t.Fatalf("All error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count = %d, want 2", len(matches))
	}
	if matches[0].Length != 1 || matches[1].Length != 1 {
		t.Errorf("lengths = (%d, %d), want (1, 1)", matches[0].Length, matches[1].Length)
	}
}
