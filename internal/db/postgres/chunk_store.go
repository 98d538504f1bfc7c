package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// ChunkStore 语料块的 PostgreSQL 存储。默认存储是 JSON 文件，
// 多实例部署共享语料时切到这里。
type ChunkStore struct {
	db *sql.DB
}

// Open 连接数据库并确认可达。
func Open(dsn string) (*ChunkStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	applog.Info("[Storage/PG] ✅ Connected to PostgreSQL")
	return &ChunkStore{db: db}, nil
}

// NewChunkStore 用已有连接创建存储（测试用）。
func NewChunkStore(db *sql.DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// Close 关闭连接池。
func (s *ChunkStore) Close() error {
	return s.db.Close()
}

// EnsureTable 确保语料表存在。
func (s *ChunkStore) EnsureTable(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS corpus_chunks (
		id         INTEGER PRIMARY KEY,
		subject    VARCHAR(128) NOT NULL,
		content    TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_corpus_chunks_subject ON corpus_chunks(subject);
	`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Save 整体替换语料。事务内先清后写，失败回滚，读方永远看到完整语料。
func (s *ChunkStore) Save(ctx context.Context, chunks []retrieval.Chunk) error {
	if len(chunks) == 0 {
		return fmt.Errorf("refusing to save empty corpus")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM corpus_chunks`); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO corpus_chunks (id, subject, content, updated_at) VALUES ($1, $2, $3, NOW())`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Subject, c.Content); err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit corpus: %w", err)
	}

	applog.Info("[Storage/PG] Corpus saved", "count", len(chunks))
	return nil
}

// Load 按 ID 升序读出全部语料块。
func (s *ChunkStore) Load(ctx context.Context) ([]retrieval.Chunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, content FROM corpus_chunks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query corpus: %w", err)
	}
	defer rows.Close()

	var chunks []retrieval.Chunk
	for rows.Next() {
		var c retrieval.Chunk
		if err := rows.Scan(&c.ID, &c.Subject, &c.Content); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corpus: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("corpus table is empty")
	}

	applog.Info("[Storage/PG] Corpus loaded", "count", len(chunks))
	return chunks, nil
}
