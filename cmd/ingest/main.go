package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/7Vedansh/Gyaan-Setu/internal/adapter/provider/llm/openai"
	"github.com/7Vedansh/Gyaan-Setu/internal/app/bootstrap"
	"github.com/7Vedansh/Gyaan-Setu/internal/db/jsonstore"
	"github.com/7Vedansh/Gyaan-Setu/internal/db/postgres"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/ingest"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	"github.com/7Vedansh/Gyaan-Setu/internal/platform/config"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// embedBatchSize 向量化批大小。
const embedBatchSize = 64

func main() {
	corpusDir := flag.String("corpus", "", "corpus directory (overrides CORPUS_DIR)")
	outPath := flag.String("out", "", "chunks output path (overrides CHUNKS_PATH)")
	enrich := flag.Bool("enrich", false, "rewrite table-like chunks with the online model")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Config load failed: %v\n", err)
		os.Exit(1)
	}
	if *corpusDir != "" {
		cfg.Store.CorpusDir = *corpusDir
	}
	if *outPath != "" {
		cfg.Store.ChunksPath = *outPath
	}

	applog.Init(applog.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	online := bootstrap.RegisterLLMProviders(cfg)

	var enricher *ingest.Enricher
	if *enrich {
		if online == nil {
			applog.Fatal("❌ -enrich needs GROQ_API_KEY")
		}
		enricher = ingest.NewEnricher(online, cfg.Online.Model,
			time.Duration(cfg.Online.TimeoutSeconds)*time.Second)
		applog.Info("✅ Chunk enrichment enabled", "model", cfg.Online.Model)
	}

	pipeline, err := ingest.NewPipeline(cfg.Chunking, enricher)
	if err != nil {
		applog.Fatalf("❌ Invalid chunking thresholds: %v", err)
	}

	ctx := context.Background()
	applog.Info("🚀 Ingesting corpus", "dir", cfg.Store.CorpusDir)
	report, err := pipeline.IngestDir(ctx, cfg.Store.CorpusDir)
	if err != nil {
		applog.Fatalf("❌ Ingestion failed: %v", err)
	}

	if err := jsonstore.SaveChunks(cfg.Store.ChunksPath, report.Chunks); err != nil {
		applog.Fatalf("❌ Failed to save chunks: %v", err)
	}

	if cfg.Store.Driver == "postgres" {
		pg, err := postgres.Open(cfg.Store.PostgresDSN)
		if err != nil {
			applog.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
		}
		defer pg.Close()
		if err := pg.EnsureTable(ctx); err != nil {
			applog.Fatalf("❌ Failed to ensure corpus table: %v", err)
		}
		if err := pg.Save(ctx, report.Chunks); err != nil {
			applog.Fatalf("❌ Failed to save corpus to PostgreSQL: %v", err)
		}
	}

	if cfg.Retrieval.Mode == "vector" {
		if online == nil {
			applog.Fatal("❌ Vector index build needs GROQ_API_KEY")
		}
		embedder := openai.NewEmbedder(online, cfg.Retrieval.EmbeddingModel, cfg.Retrieval.EmbeddingDims)
		index, err := buildIndex(ctx, embedder, cfg.Retrieval.EmbeddingModel, report.Chunks)
		if err != nil {
			applog.Fatalf("❌ Failed to build vector index: %v", err)
		}
		if err := jsonstore.SaveIndex(cfg.Store.IndexPath, index); err != nil {
			applog.Fatalf("❌ Failed to save vector index: %v", err)
		}
	}

	applog.Info("✅ Ingestion complete",
		"files", len(report.Files),
		"chunks", len(report.Chunks),
		"output", cfg.Store.ChunksPath)
}

// buildIndex 按块顺序批量向量化，索引行号与块下标一一对应。
func buildIndex(ctx context.Context, embedder retrieval.Embedder, model string, chunks []retrieval.Chunk) (*retrieval.VectorIndex, error) {
	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		batch, err := embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		vectors = append(vectors, batch...)
		applog.Info("[Ingest] Embedded batch", "done", end, "total", len(chunks))
	}

	return &retrieval.VectorIndex{
		Dim:     embedder.Dims(),
		Model:   model,
		Vectors: vectors,
	}, nil
}
