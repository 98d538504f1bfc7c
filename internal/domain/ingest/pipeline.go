package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// ── 摄取管线 ─────────────────────────────────────────────────

// Pipeline 文档摄取管线：解析 → 分块 → 清洗 → 过滤 → 编号。
type Pipeline struct {
	registry   *ParserRegistry
	thresholds Thresholds
	enricher   *Enricher // 可选，nil 表示跳过增润
}

// NewPipeline 创建摄取管线。
func NewPipeline(th Thresholds, enricher *Enricher) (*Pipeline, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	if enricher != nil {
		enricher.thresholds = th
	}
	return &Pipeline{
		registry:   NewParserRegistry(),
		thresholds: th,
		enricher:   enricher,
	}, nil
}

// FileReport 单文件摄取统计。
type FileReport struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Subject  string `json:"subject"`
	Elements int    `json:"elements"`
	Raw      int    `json:"raw_chunks"`
	Kept     int    `json:"kept_chunks"`
	Dropped  int    `json:"dropped_chunks"`
}

// Report 整体摄取统计。
type Report struct {
	Files  []FileReport      `json:"files"`
	Chunks []retrieval.Chunk `json:"-"`
}

// IngestDir 摄取目录下全部受支持文档，返回编号连续的语料块。
// 文件按名字典序处理，保证块 ID 在重复运行间稳定。
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := p.registry.Get(e.Name()); err != nil {
			applog.Debug("[Ingest] Skipping unsupported file", "filename", e.Name())
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no supported documents in %s", dir)
	}

	report := &Report{}
	nextID := 0
	for _, name := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fr, chunks, err := p.ingestFile(ctx, filepath.Join(dir, name), nextID)
		if err != nil {
			applog.Error("[Ingest] Failed to ingest file", "filename", name, "error", err)
			return nil, fmt.Errorf("ingest %s: %w", name, err)
		}
		nextID += len(chunks)
		report.Files = append(report.Files, *fr)
		report.Chunks = append(report.Chunks, chunks...)
	}

	applog.Info("[Ingest] ✅ Corpus ingested",
		"files", len(report.Files),
		"chunks", len(report.Chunks))
	return report, nil
}

// ingestFile 单文件摄取，块 ID 从 startID 起连续分配。
func (p *Pipeline) ingestFile(ctx context.Context, path string, startID int) (*FileReport, []retrieval.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	parser, err := p.registry.Get(name)
	if err != nil {
		return nil, nil, err
	}

	result, err := parser.Parse(f, name)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	raw := BuildChunks(result.Elements, p.thresholds)
	subject := subjectFromFilename(name)

	var chunks []retrieval.Chunk
	dropped := 0
	for _, text := range raw {
		cleaned := CleanText(text)
		if !IsValidChunk(cleaned, p.thresholds) {
			dropped++
			continue
		}
		if p.enricher != nil {
			cleaned = p.enricher.Enrich(ctx, cleaned)
		}
		chunks = append(chunks, retrieval.Chunk{
			ID:      startID + len(chunks),
			Subject: subject,
			Content: cleaned,
		})
	}

	fr := &FileReport{
		DocID:    uuid.New().String(),
		Filename: name,
		Subject:  subject,
		Elements: len(result.Elements),
		Raw:      len(raw),
		Kept:     len(chunks),
		Dropped:  dropped,
	}
	applog.Info("[Ingest] File processed",
		"filename", name,
		"subject", subject,
		"elements", fr.Elements,
		"kept", fr.Kept,
		"dropped", fr.Dropped)
	return fr, chunks, nil
}

// subjectFromFilename 从文件名推导学科标签：去扩展名，小写。
func subjectFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ToLower(strings.TrimSpace(base))
}
