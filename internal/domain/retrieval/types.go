package retrieval

import "context"

// Chunk 检索的原子单元。由离线摄取批量产出，服务期只读。
type Chunk struct {
	ID      int    `json:"id"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`
}

// ScoredChunk 单次检索内的临时配对：块 + 相关性得分。
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// RetrievalResult 检索结果。
// 不变式：Context 为空 ⇔ Confidence 为 0。
type RetrievalResult struct {
	Context    string  `json:"context"`
	Confidence float64 `json:"confidence"`
}

// Retriever 把问题映射到相关上下文。subject 非空时先过滤到指定学科分区再打分。
//
// Confidence 是启发式标量（非校准概率），两种策略的公式各不相同，
// 不要与其他置信来源做算术混合。
type Retriever interface {
	Retrieve(ctx context.Context, query string, subject string) (RetrievalResult, error)
}

// ContextSeparator 拼接上下文时块与块之间的分隔符。
const ContextSeparator = "\n\n---\n\n"
