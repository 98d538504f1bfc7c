package jsonstore

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// ── 语料块 JSON 持久化 ───────────────────────────────────────

// SaveChunks 把语料块写入 JSON 文件。写临时文件后原子改名，
// 避免摄取中断留下半截语料。
func SaveChunks(path string, chunks []retrieval.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("refusing to save empty corpus to %s", path)
	}

	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write chunks: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename chunks file: %w", err)
	}

	applog.Info("[JSONStore] Chunks saved", "path", path, "count", len(chunks))
	return nil
}

// LoadChunks 读取语料块 JSON 文件。
func LoadChunks(path string) ([]retrieval.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chunks file: %w", err)
	}

	var chunks []retrieval.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("unmarshal chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("chunks file %s is empty", path)
	}

	applog.Info("[JSONStore] Chunks loaded", "path", path, "count", len(chunks))
	return chunks, nil
}

// ── 向量索引 gob 持久化 ──────────────────────────────────────

// SaveIndex 把向量索引写入 gob 文件。向量矩阵走二进制省空间。
func SaveIndex(path string, index *retrieval.VectorIndex) error {
	if index == nil || len(index.Vectors) == 0 {
		return fmt.Errorf("refusing to save empty vector index to %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(index); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode index: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename index file: %w", err)
	}

	applog.Info("[JSONStore] Vector index saved",
		"path", path, "vectors", len(index.Vectors), "dim", index.Dim)
	return nil
}

// LoadIndex 读取向量索引 gob 文件。
func LoadIndex(path string) (*retrieval.VectorIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	var index retrieval.VectorIndex
	if err := gob.NewDecoder(f).Decode(&index); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if len(index.Vectors) == 0 {
		return nil, fmt.Errorf("index file %s holds no vectors", path)
	}

	applog.Info("[JSONStore] Vector index loaded",
		"path", path, "vectors", len(index.Vectors), "dim", index.Dim)
	return &index, nil
}
