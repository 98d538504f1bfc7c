package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// 测试用小阈值，便于构造边界。
func testThresholds() Thresholds {
	return Thresholds{
		Max:          50,
		NewAfter:     30,
		CombineUnder: 10,
		MinChars:     0,
		MinSentences: 0,
	}
}

func TestBuildChunksGroupsWithinBudget(t *testing.T) {
	th := testThresholds()
	chunks := BuildChunks([]string{"alpha beta", "gamma delta"}, th)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "alpha beta\ngamma delta" {
		t.Fatalf("unexpected chunk content: %q", chunks[0])
	}
	t.Logf("✅ Elements within budget grouped into one chunk")
}

func TestBuildChunksFlushesWhenBudgetExceeded(t *testing.T) {
	th := testThresholds()
	a := strings.Repeat("a", 20)
	b := strings.Repeat("b", 20)
	chunks := BuildChunks([]string{a, b}, th)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != a || chunks[1] != b {
		t.Fatalf("source order not preserved: %v", chunks)
	}
}

func TestBuildChunksMergesShortIntoPrevious(t *testing.T) {
	th := testThresholds()
	long := strings.Repeat("a", 25)
	short := strings.Repeat("b", 8)
	chunks := BuildChunks([]string{long, short}, th)

	if len(chunks) != 1 {
		t.Fatalf("short tail chunk should merge into previous, got %d chunks: %v", len(chunks), chunks)
	}
	if chunks[0] != long+"\n"+short {
		t.Fatalf("unexpected merged content: %q", chunks[0])
	}
}

func TestBuildChunksMergesShortFirstIntoNext(t *testing.T) {
	th := testThresholds()
	short := strings.Repeat("a", 8)
	long := strings.Repeat("b", 28)
	chunks := BuildChunks([]string{short, long}, th)

	if len(chunks) != 1 {
		t.Fatalf("short first chunk should merge forward, got %d chunks: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], short) {
		t.Fatalf("merged chunk should start with the short fragment: %q", chunks[0])
	}
}

func TestBuildChunksHardCap(t *testing.T) {
	th := testThresholds()
	chunks := BuildChunks([]string{strings.Repeat("x", 120)}, th)

	if len(chunks) < 2 {
		t.Fatalf("oversized element should be split, got %d chunks", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > th.Max {
			t.Fatalf("chunk %d exceeds hard cap: %d > %d", i, n, th.Max)
		}
	}
	t.Logf("✅ Hard cap enforced across %d chunks", len(chunks))
}

func TestBuildChunksPreservesLineBoundaries(t *testing.T) {
	th := testThresholds()
	chunks := BuildChunks([]string{"first line is prose", "Fig. 1: caption"}, th)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %v", len(chunks), chunks)
	}
	// 行边界必须存活到清洗阶段，行级规则（图注、公式行）才不会越界。
	if !strings.Contains(chunks[0], "\n") {
		t.Fatalf("elements should stay on separate lines, got %q", chunks[0])
	}
}

func TestBuildChunksEmptyInput(t *testing.T) {
	if chunks := BuildChunks(nil, testThresholds()); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %v", chunks)
	}
	if chunks := BuildChunks([]string{"", "  "}, testThresholds()); len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank elements, got %v", chunks)
	}
}

func TestThresholdsValidate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatalf("default thresholds should validate: %v", err)
	}

	bad := DefaultThresholds()
	bad.CombineUnder = bad.NewAfter
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error when combine_under >= new_after")
	}

	bad = DefaultThresholds()
	bad.NewAfter = bad.Max
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error when new_after >= max")
	}
}
