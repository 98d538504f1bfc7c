package tutor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/7Vedansh/Gyaan-Setu/internal/adapter/provider/llm/openai"
	"github.com/7Vedansh/Gyaan-Setu/internal/app/bootstrap"
	"github.com/7Vedansh/Gyaan-Setu/internal/db/jsonstore"
	"github.com/7Vedansh/Gyaan-Setu/internal/db/postgres"
	redisdb "github.com/7Vedansh/Gyaan-Setu/internal/db/redis"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/lang"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	domaintutor "github.com/7Vedansh/Gyaan-Setu/internal/domain/tutor"
	"github.com/7Vedansh/Gyaan-Setu/internal/platform/config"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// App 组装问答服务：语料存储、检索器、生成后端、路由。
// Reload 会整体重建检索侧，读写通过锁隔离。
type App struct {
	cfg    *config.AppConfig
	online *openai.Provider

	mu     sync.RWMutex
	router *domaintutor.Router

	cache *redisdb.AnswerCache
	pg    *postgres.ChunkStore
}

// New 按配置组装应用。
func New(cfg *config.AppConfig) (*App, error) {
	a := &App{cfg: cfg}
	a.online = bootstrap.RegisterLLMProviders(cfg)

	if cfg.Store.Driver == "postgres" {
		pg, err := postgres.Open(cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureTable(context.Background()); err != nil {
			pg.Close()
			return nil, fmt.Errorf("ensure corpus table: %w", err)
		}
		a.pg = pg
	}

	if cfg.Redis.URL != "" {
		rdb, err := redisdb.NewClient(cfg.Redis.URL)
		if err != nil {
			applog.Warnf("⚠️ Redis unavailable, answer cache disabled: %v", err)
		} else {
			a.cache = redisdb.NewAnswerCache(rdb, cfg.Redis.TTLSeconds)
		}
	}

	router, err := a.buildRouter(context.Background())
	if err != nil {
		return nil, err
	}
	a.router = router
	return a, nil
}

// Route 路由一个学生问题。
func (a *App) Route(ctx context.Context, question string) domaintutor.RouterResult {
	a.mu.RLock()
	router := a.router
	a.mu.RUnlock()
	return router.Route(ctx, question)
}

// Reload 重新加载语料并重建检索器与路由，然后清空答案缓存。
func (a *App) Reload(ctx context.Context) error {
	router, err := a.buildRouter(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.router = router
	a.mu.Unlock()

	if a.cache != nil {
		a.cache.InvalidateAll(ctx)
	}
	return nil
}

// Close 释放外部连接。
func (a *App) Close() error {
	if a.pg != nil {
		return a.pg.Close()
	}
	return nil
}

// buildRouter 从存储重建完整的问答路由。
func (a *App) buildRouter(ctx context.Context) (*domaintutor.Router, error) {
	chunks, err := a.loadChunks(ctx)
	if err != nil {
		return nil, err
	}

	store, err := retrieval.NewStore(chunks)
	if err != nil {
		return nil, err
	}

	retriever, err := a.buildRetriever(store)
	if err != nil {
		return nil, err
	}

	primary, secondary := a.buildBackends()

	cfg := a.cfg
	routerCfg := domaintutor.Config{
		OnlineConfidence:  cfg.Tutor.OnlineConfidence,
		OfflineConfidence: cfg.Tutor.OfflineConfidence,
		ReducedConfidence: cfg.Tutor.ReducedConfidence,
		MinAnswerRunes:    cfg.Tutor.MinAnswerRunes,
		PrimaryTimeout:    time.Duration(cfg.Tutor.PrimaryTimeoutSeconds) * time.Second,
		FallbackTimeout:   time.Duration(cfg.Tutor.FallbackTimeoutSeconds) * time.Second,
		Subject:           cfg.Tutor.Subject,
	}

	router := domaintutor.NewRouter(routerCfg, nil, primary, secondary, retriever)
	if a.cache != nil {
		router.SetCache(a.cache)
	}
	return router, nil
}

func (a *App) loadChunks(ctx context.Context) ([]retrieval.Chunk, error) {
	if a.pg != nil {
		return a.pg.Load(ctx)
	}
	return jsonstore.LoadChunks(a.cfg.Store.ChunksPath)
}

func (a *App) buildRetriever(store *retrieval.Store) (retrieval.Retriever, error) {
	cfg := a.cfg
	if cfg.Retrieval.Mode != "vector" {
		return retrieval.NewLexicalRetriever(store, cfg.Retrieval.TopK), nil
	}

	if a.online == nil {
		return nil, fmt.Errorf("vector retrieval needs an embedding provider")
	}
	index, err := jsonstore.LoadIndex(cfg.Store.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("load vector index: %w", err)
	}
	embedder := openai.NewEmbedder(a.online, cfg.Retrieval.EmbeddingModel, cfg.Retrieval.EmbeddingDims)
	return retrieval.NewVectorRetriever(store, index, embedder, cfg.Retrieval.TopK)
}

// buildBackends 主后端走在线模型，兜底后端优先本地模型子进程，
// 没有配置本地模型时退化为抽取式回答。
func (a *App) buildBackends() (primary, secondary domaintutor.Backend) {
	cfg := a.cfg

	if a.online != nil {
		primary = domaintutor.NewOnlineBackend(domaintutor.OnlineBackendConfig{
			Provider:    a.online.Name(),
			Model:       cfg.Online.Model,
			Temperature: cfg.Online.Temperature,
			TopP:        cfg.Online.TopP,
			MaxTokens:   cfg.Online.MaxTokens,
		})
	} else {
		primary = unavailableBackend{}
	}

	if cfg.Local.Command != "" {
		secondary = domaintutor.NewLocalBackend("localexec", "", 512)
	} else {
		secondary = domaintutor.ExtractiveBackend{}
	}
	return primary, secondary
}

// unavailableBackend 纯离线部署的主后端占位：永远失败，
// 让路由直接走离线兜底。
type unavailableBackend struct{}

func (unavailableBackend) Generate(context.Context, string, lang.Code, string) (string, error) {
	return "", fmt.Errorf("online model is not configured")
}
