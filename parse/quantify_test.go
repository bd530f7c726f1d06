package parse

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/streamparse/stream"
)

func TestExactlyZeroAlwaysSucceeds(t *testing.T) {
	for _, input := range []string{"", "abc", "123"} {
		t.Run("input "+input, func(t *testing.T) {
			cur := stream.NewCursor(runeSource(input))
			defer cur.Close()
			r, found, err := First(context.Background(), Exactly(digit(), 0), cur)
			if err != nil || !found {
				t.Fatalf("First = (%v, %v), want match", found, err)
			}
			if len(r.Value) != 0 || r.Length != 0 {
				t.Errorf("result = (%v, %d), want (empty, 0)", r.Value, r.Length)
			}
		})
	}
}

func TestExactly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
		want  string // "" means no match
	}{
		{"exact", "123", 3, "123"},
		{"longer input", "1234", 3, "123"},
		{"too few", "12", 3, ""},
		{"empty", "", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := stream.NewCursor(runeSource(tt.input))
			defer cur.Close()
			r, found, err := First(context.Background(), Exactly(digit(), tt.count), cur)
			if err != nil {
				t.Fatalf("First error = %v", err)
			}
			if tt.want == "" {
				if found {
					t.Fatalf("matched %q, want failure", string(r.Value))
				}
				return
			}
			if !found {
				t.Fatalf("no match, want %q", tt.want)
			}
			if string(r.Value) != tt.want || r.Length != len(tt.want) {
				t.Errorf("result = (%q, %d), want (%q, %d)", string(r.Value), r.Length, tt.want, len(tt.want))
			}
		})
	}
}

func TestAtLeastPartialIsTotalFailure(t *testing.T) {
	cur := stream.NewCursor(runeSource("12ab"))
	defer cur.Close()
	_, found, err := First(context.Background(), AtLeast(digit(), 3), cur)
	if err != nil {
		t.Fatalf("First error = %v", err)
	}
	if found {
		t.Errorf("AtLeast(3) matched with only 2 digits available")
	}
}

func TestGreedyTakesLongest(t *testing.T) {
	cur := stream.NewCursor(runeSource("111x"))
	defer cur.Close()
	rs, err := Collect(context.Background(), ZeroOrMore(digit()), cur)
	if err != nil {
		t.Fatalf("Collect error = %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("result count = %d, want 1 (greedy yields only the longest)", len(rs))
	}
	if string(rs[0].Value) != "111" || rs[0].Length != 3 {
		t.Errorf("result = (%q, %d), want (\"111\", 3)", string(rs[0].Value), rs[0].Length)
	}
}

func TestNonGreedyOffersShortestFirst(t *testing.T) {
	// Unresolved at top level, a non-greedy quantifier stops at Min.
	cur := stream.NewCursor(runeSource("111"))
	defer cur.Close()
	r, found, err := First(context.Background(), Repeat(digit(), Quantity{Min: 1, Max: -1, NonGreedy: true}), cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if !r.IsLookAhead() {
		t.Errorf("non-greedy offer is not a lookahead result")
	}
	if string(r.Value) != "1" || r.Length != 1 {
		t.Errorf("result = (%q, %d), want (\"1\", 1)", string(r.Value), r.Length)
	}
}

func TestNonGreedyZeroMinOffersEmptyFirst(t *testing.T) {
	cur := stream.NewCursor(runeSource("11"))
	defer cur.Close()
	r, found, err := First(context.Background(), Repeat(digit(), Quantity{Max: -1, NonGreedy: true}), cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if len(r.Value) != 0 || r.Length != 0 {
		t.Errorf("first offer = (%q, %d), want empty at length 0", string(r.Value), r.Length)
	}
}

func TestNonGreedyMinEqualsMaxDegeneratesToExactly(t *testing.T) {
	cur := stream.NewCursor(runeSource("123"))
	defer cur.Close()
	r, found, err := First(context.Background(), Repeat(digit(), Quantity{Min: 2, Max: 2, NonGreedy: true}), cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if r.IsLookAhead() {
		t.Errorf("degenerate quantifier produced a lookahead")
	}
	if string(r.Value) != "12" || r.Length != 2 {
		t.Errorf("result = (%q, %d), want (\"12\", 2)", string(r.Value), r.Length)
	}
}

func TestRepeatSep(t *testing.T) {
	comma := Literal(',')
	list := RepeatSep(digit(), comma, Quantity{Min: 1, Max: -1})

	tests := []struct {
		name       string
		input      string
		want       []rune
		wantLength int
	}{
		{"three items", "1,2,3", []rune{'1', '2', '3'}, 5},
		{"trailing separator not consumed", "1,2,x", []rune{'1', '2'}, 3},
		{"single item", "7", []rune{'7'}, 1},
		{"separator only continues the loop", "1,,2", []rune{'1'}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := stream.NewCursor(runeSource(tt.input))
			defer cur.Close()
			r, found, err := First(context.Background(), list, cur)
			if err != nil || !found {
				t.Fatalf("First = (%v, %v)", found, err)
			}
			if diff := cmp.Diff(tt.want, r.Value); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if r.Length != tt.wantLength {
				t.Errorf("length = %d, want %d", r.Length, tt.wantLength)
			}
		})
	}
}

func TestRepeatSepBelowMinFails(t *testing.T) {
	list := RepeatSep(digit(), Literal(','), Quantity{Min: 3, Max: -1})
	cur := stream.NewCursor(runeSource("1,2"))
	defer cur.Close()
	_, found, err := First(context.Background(), list, cur)
	if err != nil {
		t.Fatalf("First error = %v", err)
	}
	if found {
		t.Errorf("matched below the minimum count")
	}
}

func TestBetween(t *testing.T) {
	cur := stream.NewCursor(runeSource("1111"))
	defer cur.Close()
	r, found, err := First(context.Background(), Between(digit(), 1, 3), cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if r.Length != 3 {
		t.Errorf("length = %d, want 3 (greedy up to max)", r.Length)
	}
}

func TestNestedQuantifiers(t *testing.T) {
	// Quantifiers compose over slice-valued parsers: as many digit pairs as
	// the input holds.
	pairs := ZeroOrMore(Exactly(digit(), 2))
	cur := stream.NewCursor(runeSource("1234x"))
	defer cur.Close()
	r, found, err := First(context.Background(), pairs, cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if r.Length != 4 {
		t.Errorf("length = %d, want 4", r.Length)
	}
	var got []string
	for _, pair := range r.Value {
		got = append(got, string(pair))
	}
	if diff := cmp.Diff([]string{"12", "34"}, got); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

func TestEpsilonRepetitionTerminates(t *testing.T) {
	cur := stream.NewCursor(runeSource("ab"))
	defer cur.Close()
	r, found, err := First(context.Background(), ZeroOrMore(Epsilon[rune]('e')), cur)
	if err != nil || !found {
		t.Fatalf("First = (%v, %v)", found, err)
	}
	if r.Length != 0 {
		t.Errorf("length = %d, want 0", r.Length)
	}
}

func TestQuantityValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("invalid quantity did not panic")
		}
	}()
	Repeat(digit(), Quantity{Min: 3, Max: 1})
}
