package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// Embedder 文本向量化接口（批量）。
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dims() int
}

// VectorIndex 语料块的预计算向量，下标与 Store 中的块一一对应。
// 加载后只读。语料规模不大，精确线性扫描足够，无需近似索引。
type VectorIndex struct {
	Dim     int         `json:"dim"`
	Model   string      `json:"model"`
	Vectors [][]float32 `json:"vectors"`
}

// Validate 校验索引与语料的对应关系。
func (idx *VectorIndex) Validate(store *Store) error {
	if len(idx.Vectors) != store.Len() {
		return fmt.Errorf("vector index size %d does not match corpus size %d",
			len(idx.Vectors), store.Len())
	}
	for i, v := range idx.Vectors {
		if len(v) != idx.Dim {
			return fmt.Errorf("vector %d: dim %d, want %d", i, len(v), idx.Dim)
		}
	}
	return nil
}

// VectorRetriever 向量距离检索：编码问题后对全部块向量做 L2 线性扫描，
// 取距离最小的 K 个。
type VectorRetriever struct {
	store    *Store
	index    *VectorIndex
	embedder Embedder
	topK     int
}

// NewVectorRetriever 创建向量检索器。
func NewVectorRetriever(store *Store, index *VectorIndex, embedder Embedder, topK int) (*VectorRetriever, error) {
	if err := index.Validate(store); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 3
	}
	return &VectorRetriever{store: store, index: index, embedder: embedder, topK: topK}, nil
}

// Retrieve 编码问题并返回最近的 K 个块。
//
// Confidence = 1/(1 + 平均距离)，夹取到 [0,1]。距离越小越接近 1，
// 同样是启发式标量而非校准概率。
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, subject string) (RetrievalResult, error) {
	start := time.Now()

	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return RetrievalResult{}, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) != r.index.Dim {
		return RetrievalResult{}, fmt.Errorf("embedder returned unexpected shape")
	}
	queryVec := vectors[0]

	type hit struct {
		idx  int
		dist float64
	}
	candidates := r.store.Select(subject)
	hits := make([]hit, 0, len(candidates))
	for _, i := range candidates {
		// 索引与语料可能短暂失配（手工替换文件等），越界防御性跳过。
		if i < 0 || i >= len(r.index.Vectors) {
			continue
		}
		hits = append(hits, hit{idx: i, dist: l2Distance(queryVec, r.index.Vectors[i])})
	}

	sort.SliceStable(hits, func(a, b int) bool { return hits[a].dist < hits[b].dist })
	if len(hits) > r.topK {
		hits = hits[:r.topK]
	}
	if len(hits) == 0 {
		return RetrievalResult{}, nil
	}

	contents := make([]string, 0, len(hits))
	sum := 0.0
	for _, h := range hits {
		contents = append(contents, r.store.chunks[h.idx].Content)
		sum += h.dist
	}
	mean := sum / float64(len(hits))

	confidence := 1.0 / (1.0 + mean)
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < 0.0 {
		confidence = 0.0
	}

	applog.Debug("[Retrieval/Vector] Query scanned",
		"candidates", len(candidates),
		"top_k", len(hits),
		"mean_distance", mean,
		"confidence", confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return RetrievalResult{
		Context:    strings.Join(contents, ContextSeparator),
		Confidence: confidence,
	}, nil
}

func l2Distance(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
