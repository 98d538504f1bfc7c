package retrieval

import (
	"fmt"
	"strings"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// Store 进程内的语料句柄。加载一次后只读，可被并发查询安全共享。
// 刷新语料 = 重新构建一个 Store，不做原地修改。
type Store struct {
	chunks []Chunk
}

// NewStore 用已加载的块构建 Store 并校验不变式：
// 内容非空、id 在语料内唯一。
func NewStore(chunks []Chunk) (*Store, error) {
	seen := make(map[int]struct{}, len(chunks))
	for i, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			return nil, fmt.Errorf("chunk %d: empty content", c.ID)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate chunk id %d at position %d", c.ID, i)
		}
		seen[c.ID] = struct{}{}
	}

	applog.Info("[Store] Corpus loaded", "chunks", len(chunks))
	return &Store{chunks: chunks}, nil
}

// Len 返回块数量。
func (s *Store) Len() int {
	return len(s.chunks)
}

// Chunks 返回全部块。调用方不得修改返回切片。
func (s *Store) Chunks() []Chunk {
	return s.chunks
}

// Select 返回参与打分的块下标。subject 为空时返回全量，
// 否则过滤到指定学科分区（语料跨多本教材时使用）。
func (s *Store) Select(subject string) []int {
	idx := make([]int, 0, len(s.chunks))
	for i, c := range s.chunks {
		if subject != "" && c.Subject != subject {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}
