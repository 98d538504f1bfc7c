package retrieval

import "testing"

// TestDedupeLines 重复行去重，保留首次出现顺序。
func TestDedupeLines(t *testing.T) {
	in := "Newton's first law.\nNewton's first law.\nNewton's first law.\nObjects resist change."
	got := DedupeLines(in)
	want := "Newton's first law.\nObjects resist change."
	if got != want {
		t.Errorf("DedupeLines = %q, want %q", got, want)
	}
}

// TestDedupeLinesCaseSensitive 大小写敏感的精确匹配，不同大小写不算重复。
func TestDedupeLinesCaseSensitive(t *testing.T) {
	in := "Energy is conserved.\nenergy is conserved."
	if got := DedupeLines(in); got != in {
		t.Errorf("case-differing lines were deduped: %q", got)
	}
}

// TestDedupeLinesNoDuplicates 无重复时保持原样。
func TestDedupeLinesNoDuplicates(t *testing.T) {
	in := "line one\nline two\nline three"
	if got := DedupeLines(in); got != in {
		t.Errorf("DedupeLines altered unique input: %q", got)
	}
}

// TestStoreRejectsInvalidChunks Store 构建时校验内容非空与 id 唯一。
func TestStoreRejectsInvalidChunks(t *testing.T) {
	if _, err := NewStore([]Chunk{{ID: 0, Content: "   "}}); err == nil {
		t.Error("expected error for empty content")
	}
	if _, err := NewStore([]Chunk{
		{ID: 0, Content: "First chunk text."},
		{ID: 0, Content: "Second chunk text."},
	}); err == nil {
		t.Error("expected error for duplicate ids")
	}
}
