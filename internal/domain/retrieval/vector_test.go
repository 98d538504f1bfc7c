package retrieval

import (
	"context"
	"strings"
	"testing"
)

// fakeEmbedder 确定性“向量化”：按预置表返回向量。
type fakeEmbedder struct {
	dims    int
	vectors map[string][]float32
}

func (f *fakeEmbedder) Dims() int { return f.dims }

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = make([]float32, f.dims)
		}
		out[i] = v
	}
	return out, nil
}

func newVectorFixture(t *testing.T) (*Store, *VectorIndex, *fakeEmbedder) {
	t.Helper()
	store := mustStore(t, []Chunk{
		{ID: 0, Subject: "physics", Content: "Force causes acceleration."},
		{ID: 1, Subject: "physics", Content: "Light travels in straight lines."},
		{ID: 2, Subject: "biology", Content: "Cells are units of life."},
	})
	index := &VectorIndex{
		Dim:   2,
		Model: "fake",
		Vectors: [][]float32{
			{1, 0},
			{0, 1},
			{10, 10},
		},
	}
	emb := &fakeEmbedder{
		dims: 2,
		vectors: map[string][]float32{
			"about force": {1, 0},
			"about light": {0, 1},
		},
	}
	return store, index, emb
}

// TestVectorNearestFirst 最近邻排在上下文最前。
func TestVectorNearestFirst(t *testing.T) {
	store, index, emb := newVectorFixture(t)
	r, err := NewVectorRetriever(store, index, emb, 2)
	if err != nil {
		t.Fatalf("NewVectorRetriever failed: %v", err)
	}

	res, err := r.Retrieve(context.Background(), "about force", "")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	parts := strings.Split(res.Context, ContextSeparator)
	if len(parts) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(parts))
	}
	if !strings.Contains(parts[0], "Force") {
		t.Errorf("nearest chunk not first: %q", parts[0])
	}
}

// TestVectorConfidenceRange 置信度 = 1/(1+平均距离)，落在 (0,1]。
func TestVectorConfidenceRange(t *testing.T) {
	store, index, emb := newVectorFixture(t)
	r, err := NewVectorRetriever(store, index, emb, 1)
	if err != nil {
		t.Fatalf("NewVectorRetriever failed: %v", err)
	}

	res, err := r.Retrieve(context.Background(), "about force", "")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	// 精确命中 → 距离 0 → 置信度 1。
	if res.Confidence != 1.0 {
		t.Errorf("exact match confidence = %v, want 1.0", res.Confidence)
	}

	res2, err := r.Retrieve(context.Background(), "about light", "biology")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if res2.Confidence <= 0 || res2.Confidence > 1 {
		t.Errorf("confidence out of range: %v", res2.Confidence)
	}
}

// TestVectorSubjectFilter subject 过滤对向量检索同样生效。
func TestVectorSubjectFilter(t *testing.T) {
	store, index, emb := newVectorFixture(t)
	r, err := NewVectorRetriever(store, index, emb, 3)
	if err != nil {
		t.Fatalf("NewVectorRetriever failed: %v", err)
	}

	res, err := r.Retrieve(context.Background(), "about force", "biology")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !strings.Contains(res.Context, "Cells") || strings.Contains(res.Context, "Force") {
		t.Errorf("subject filter violated: %q", res.Context)
	}
}

// TestVectorIndexMismatchRejected 索引尺寸与语料不符时拒绝构建。
func TestVectorIndexMismatchRejected(t *testing.T) {
	store, _, emb := newVectorFixture(t)
	bad := &VectorIndex{Dim: 2, Vectors: [][]float32{{1, 0}}}
	if _, err := NewVectorRetriever(store, bad, emb, 2); err == nil {
		t.Fatal("expected error for mismatched index size")
	}
}

// TestVectorOutOfRangeSkipped 越界下标防御性跳过而非崩溃。
func TestVectorOutOfRangeSkipped(t *testing.T) {
	store, index, emb := newVectorFixture(t)
	r, err := NewVectorRetriever(store, index, emb, 3)
	if err != nil {
		t.Fatalf("NewVectorRetriever failed: %v", err)
	}
	// 构建后截断索引，模拟索引与语料失配。
	index.Vectors = index.Vectors[:1]

	res, err := r.Retrieve(context.Background(), "about force", "")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if !strings.Contains(res.Context, "Force") {
		t.Errorf("expected surviving chunk in context, got %q", res.Context)
	}
}
