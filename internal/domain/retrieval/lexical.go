package retrieval

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// wordRe 提取词元（字母/数字/下划线连续段，覆盖天城文）。
var wordRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize 小写化后提取词元，丢弃短于 3 个字符的词和停用词。
func Tokenize(text string) []string {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if isStopword(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// LexicalRetriever 词频重叠检索。
// 块得分 = Σ（问题词元在块内的出现次数），纯词频、无 IDF、不按块长归一。
type LexicalRetriever struct {
	store *Store
	topK  int
}

// NewLexicalRetriever 创建词法检索器。
func NewLexicalRetriever(store *Store, topK int) *LexicalRetriever {
	if topK <= 0 {
		topK = 3
	}
	return &LexicalRetriever{store: store, topK: topK}
}

// Retrieve 返回得分最高的 K 个块拼成的上下文。
//
// Confidence = min(1, 最高得分 / 问题词元数)。饱和比值而非概率，
// 单词元完全命中和多词元部分命中可能给出相同值，仅作路由参考。
func (r *LexicalRetriever) Retrieve(ctx context.Context, query string, subject string) (RetrievalResult, error) {
	start := time.Now()

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return RetrievalResult{}, nil
	}

	candidates := r.store.Select(subject)
	scored := make([]ScoredChunk, 0, len(candidates))
	for _, i := range candidates {
		chunk := r.store.chunks[i]
		score := termFrequencyScore(queryTokens, chunk.Content)
		scored = append(scored, ScoredChunk{Chunk: chunk, Score: score})
	}

	// 稳定排序：得分相同的块保持语料原序。
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	top := make([]string, 0, r.topK)
	for _, sc := range scored {
		if len(top) >= r.topK {
			break
		}
		if sc.Score <= 0 {
			break
		}
		top = append(top, sc.Chunk.Content)
	}

	if len(top) == 0 {
		return RetrievalResult{}, nil
	}

	confidence := scored[0].Score / float64(len(queryTokens))
	if confidence > 1.0 {
		confidence = 1.0
	}

	applog.Debug("[Retrieval/Lexical] Query scored",
		"query_tokens", len(queryTokens),
		"candidates", len(candidates),
		"hits", len(top),
		"top_score", scored[0].Score,
		"confidence", confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return RetrievalResult{
		Context:    strings.Join(top, ContextSeparator),
		Confidence: confidence,
	}, nil
}

// termFrequencyScore 问题词元在块文本中的总出现次数。
func termFrequencyScore(queryTokens []string, content string) float64 {
	freq := make(map[string]int)
	for _, w := range Tokenize(content) {
		freq[w]++
	}
	score := 0
	for _, qt := range queryTokens {
		score += freq[qt]
	}
	return float64(score)
}
