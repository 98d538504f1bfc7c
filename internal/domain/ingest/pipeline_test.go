package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write corpus file: %v", err)
	}
}

// 句子长度凑到有效性阈值之上。
func prose(topic string, sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		sb.WriteString("The topic of ")
		sb.WriteString(topic)
		sb.WriteString(" is explained here with enough detail to form a full study paragraph for revision. ")
	}
	return strings.TrimSpace(sb.String())
}

func TestIngestDirProducesContiguousIDs(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "physics.txt", prose("force and motion", 4))
	writeCorpusFile(t, dir, "biology.txt", prose("living cells", 4))

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}
	if len(report.Chunks) == 0 {
		t.Fatal("expected chunks from corpus")
	}

	for i, c := range report.Chunks {
		if c.ID != i {
			t.Fatalf("chunk IDs not contiguous: position %d has id %d", i, c.ID)
		}
		if strings.TrimSpace(c.Content) == "" {
			t.Fatalf("chunk %d has empty content", c.ID)
		}
	}
	t.Logf("✅ %d chunks with contiguous IDs from %d files", len(report.Chunks), len(report.Files))
}

func TestIngestDirSubjectFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "Physics.txt", prose("gravitation", 4))

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}

	for _, c := range report.Chunks {
		if c.Subject != "physics" {
			t.Fatalf("expected subject %q, got %q", "physics", c.Subject)
		}
	}
}

func TestIngestDirKeepsProseAroundCaption(t *testing.T) {
	dir := t.TempDir()
	content := prose("force and its effects", 2) + "\n" +
		"Fig. 8.4 : A ball rolling down the slope\n" +
		prose("friction between surfaces", 2) + "\n"
	writeCorpusFile(t, dir, "physics.txt", content)

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}
	if len(report.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(report.Chunks))
	}

	got := report.Chunks[0].Content
	if !strings.Contains(got, "force and its effects") {
		t.Fatalf("prose before the caption lost: %q", got)
	}
	if !strings.Contains(got, "friction between surfaces") {
		t.Fatalf("prose after the caption lost: %q", got)
	}
	if strings.Contains(got, "rolling") {
		t.Fatalf("caption survived cleaning: %q", got)
	}
	t.Logf("✅ Caption removed without eating the prose behind it")
}

func TestIngestDirKeepsProseWithFormulaLine(t *testing.T) {
	dir := t.TempDir()
	content := prose("force as a push or pull", 2) + "\n" +
		"F = ma (8.4)\n" +
		"The second law states that force equals mass times acceleration written as F = ma.\n" +
		prose("acceleration of moving bodies", 2) + "\n"
	writeCorpusFile(t, dir, "physics.txt", content)

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}
	if len(report.Chunks) != 1 {
		t.Fatalf("prose chunk with a formula must survive ingestion, got %d chunks", len(report.Chunks))
	}

	got := report.Chunks[0].Content
	if strings.Contains(got, "(8.4)") {
		t.Fatalf("standalone formula line survived cleaning: %q", got)
	}
	if !strings.Contains(got, "second law") || !strings.Contains(got, "push or pull") {
		t.Fatalf("prose stripped alongside the formula: %q", got)
	}
	if !strings.Contains(got, "F = ma.") {
		t.Fatalf("inline formula inside a sentence lost: %q", got)
	}
}

func TestIngestDirDropsInvalidFragments(t *testing.T) {
	dir := t.TempDir()
	// 只有孤立标题和碎片，全部应被有效性过滤掉。
	writeCorpusFile(t, dir, "notes.txt", "Chapter One\nForce\nMotion\n")
	writeCorpusFile(t, dir, "physics.txt", prose("pressure", 4))

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}

	for _, fr := range report.Files {
		if fr.Filename == "notes.txt" && fr.Kept != 0 {
			t.Fatalf("fragment-only file should yield no chunks, kept %d", fr.Kept)
		}
	}
	if len(report.Chunks) == 0 {
		t.Fatal("valid file should still yield chunks")
	}
}

func TestIngestDirSkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "physics.txt", prose("work and energy", 4))
	writeCorpusFile(t, dir, "image.png", "not a document")

	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	report, err := p.IngestDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("IngestDir failed: %v", err)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 processed file, got %d", len(report.Files))
	}
}

func TestIngestDirEmptyDir(t *testing.T) {
	p, err := NewPipeline(DefaultThresholds(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	if _, err := p.IngestDir(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error for directory without supported documents")
	}
}

func TestParserRegistryDispatch(t *testing.T) {
	r := NewParserRegistry()

	for _, name := range []string{"a.txt", "b.md", "c.pdf", "d.docx"} {
		if _, err := r.Get(name); err != nil {
			t.Fatalf("expected parser for %s: %v", name, err)
		}
	}
	if _, err := r.Get("noext"); err == nil {
		t.Fatal("expected error for filename without extension")
	}
	if _, err := r.Get("e.csv"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
