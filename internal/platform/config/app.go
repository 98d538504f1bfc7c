package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/ingest"
)

// AppConfig 全局配置。启动时统一加载，再按模块提取使用。
type AppConfig struct {
	LogLevel  string            `json:"log_level"`
	LogFormat string            `json:"log_format"`
	Server    ServerConfig      `json:"server"`
	Store     StoreConfig       `json:"store"`
	Redis     RedisConfig       `json:"redis"`
	Auth      AuthConfig        `json:"auth"`
	Retrieval RetrievalConfig   `json:"retrieval"`
	Chunking  ingest.Thresholds `json:"chunking"`
	Online    OnlineConfig      `json:"online"`
	Local     LocalConfig       `json:"local"`
	Tutor     TutorConfig       `json:"tutor"`
}

type ServerConfig struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
}

// StoreConfig 语料存储。driver = json（默认）或 postgres。
type StoreConfig struct {
	Driver      string `json:"driver"`
	ChunksPath  string `json:"chunks_path"`
	IndexPath   string `json:"index_path"`
	CorpusDir   string `json:"corpus_dir"`
	PostgresDSN string `json:"postgres_dsn"`
}

type RedisConfig struct {
	URL        string `json:"url"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type AuthConfig struct {
	JWTSecret string `json:"jwt_secret"`
	JWTIssuer string `json:"jwt_issuer"`
}

// RetrievalConfig 检索配置。mode = lexical（默认）或 vector。
type RetrievalConfig struct {
	Mode           string `json:"mode"`
	TopK           int    `json:"top_k"`
	EmbeddingModel string `json:"embedding_model"`
	EmbeddingDims  int    `json:"embedding_dims"`
}

// OnlineConfig 在线模型（OpenAI 兼容端点，默认指向 Groq）。
type OnlineConfig struct {
	APIKey         string  `json:"api_key"`
	BaseURL        string  `json:"base_url"`
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	MaxTokens      int     `json:"max_tokens"`
	TimeoutSeconds int     `json:"timeout_seconds"`
}

// LocalConfig 本地模型子进程（可选的离线兜底生成器）。
type LocalConfig struct {
	Command        string   `json:"command"`
	Args           []string `json:"args"`
	TimeoutSeconds int      `json:"timeout_seconds"`
}

// TutorConfig 路由档位。
type TutorConfig struct {
	OnlineConfidence       float64 `json:"online_confidence"`
	OfflineConfidence      float64 `json:"offline_confidence"`
	ReducedConfidence      float64 `json:"reduced_confidence"`
	MinAnswerRunes         int     `json:"min_answer_runes"`
	PrimaryTimeoutSeconds  int     `json:"primary_timeout_seconds"`
	FallbackTimeoutSeconds int     `json:"fallback_timeout_seconds"`
	Subject                string  `json:"subject"`
}

// Default 返回默认配置。
func Default() *AppConfig {
	return &AppConfig{
		LogLevel:  "info",
		LogFormat: "text",
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
		},
		Store: StoreConfig{
			Driver:     "json",
			ChunksPath: "data/chunks.json",
			IndexPath:  "data/index.gob",
			CorpusDir:  "corpus",
		},
		Redis: RedisConfig{
			TTLSeconds: 900,
		},
		Retrieval: RetrievalConfig{
			Mode:           "lexical",
			TopK:           3,
			EmbeddingModel: "text-embedding-3-small",
			EmbeddingDims:  1536,
		},
		Chunking: ingest.DefaultThresholds(),
		Online: OnlineConfig{
			BaseURL:        "https://api.groq.com/openai/v1",
			Model:          "llama-3.1-8b-instant",
			Temperature:    0.3,
			TopP:           0.9,
			MaxTokens:      1024,
			TimeoutSeconds: 30,
		},
		Local: LocalConfig{
			TimeoutSeconds: 60,
		},
		Tutor: TutorConfig{
			OnlineConfidence:       0.92,
			OfflineConfidence:      0.75,
			ReducedConfidence:      0.40,
			MinAnswerRunes:         20,
			PrimaryTimeoutSeconds:  30,
			FallbackTimeoutSeconds: 60,
		},
	}
}

// Load 加载全局配置：默认值 -> 配置文件 -> 环境变量。
// 配置文件路径通过 APP_CONFIG_FILE 指定（JSON）。
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		// .env 非必需，忽略错误
	}

	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("APP_CONFIG_FILE")); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read APP_CONFIG_FILE %q failed: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse APP_CONFIG_FILE %q failed: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv() {
	applyString("LOG_LEVEL", &c.LogLevel)
	applyString("LOG_FORMAT", &c.LogFormat)

	applyString("HOST", &c.Server.Host)
	applyInt("PORT", &c.Server.Port)
	applyInt("SERVER_READ_TIMEOUT", &c.Server.ReadTimeoutSeconds)
	applyInt("SERVER_WRITE_TIMEOUT", &c.Server.WriteTimeoutSeconds)

	applyString("STORE_DRIVER", &c.Store.Driver)
	applyString("CHUNKS_PATH", &c.Store.ChunksPath)
	applyString("INDEX_PATH", &c.Store.IndexPath)
	applyString("CORPUS_DIR", &c.Store.CorpusDir)
	applyString("DATABASE_URL", &c.Store.PostgresDSN)

	applyString("REDIS_URL", &c.Redis.URL)
	applyInt("REDIS_TTL", &c.Redis.TTLSeconds)

	applyString("JWT_SECRET", &c.Auth.JWTSecret)
	applyString("JWT_ISSUER", &c.Auth.JWTIssuer)

	applyString("RETRIEVAL_MODE", &c.Retrieval.Mode)
	applyInt("TOP_K", &c.Retrieval.TopK)
	applyString("EMBEDDING_MODEL", &c.Retrieval.EmbeddingModel)
	applyInt("EMBEDDING_DIMS", &c.Retrieval.EmbeddingDims)

	applyInt("MAX_CHUNK_CHARS", &c.Chunking.Max)
	applyInt("NEW_AFTER_CHARS", &c.Chunking.NewAfter)
	applyInt("COMBINE_UNDER_CHARS", &c.Chunking.CombineUnder)
	applyInt("MIN_CHUNK_CHARS", &c.Chunking.MinChars)
	applyInt("MIN_CHUNK_SENTENCES", &c.Chunking.MinSentences)

	applyString("GROQ_API_KEY", &c.Online.APIKey)
	applyString("ONLINE_BASE_URL", &c.Online.BaseURL)
	applyString("ONLINE_MODEL", &c.Online.Model)
	applyFloat64("ONLINE_TEMPERATURE", &c.Online.Temperature)
	applyFloat64("ONLINE_TOP_P", &c.Online.TopP)
	applyInt("ONLINE_MAX_TOKENS", &c.Online.MaxTokens)
	applyInt("ONLINE_TIMEOUT", &c.Online.TimeoutSeconds)

	applyString("LOCAL_MODEL_COMMAND", &c.Local.Command)
	applyInt("LOCAL_MODEL_TIMEOUT", &c.Local.TimeoutSeconds)

	applyFloat64("ONLINE_CONFIDENCE", &c.Tutor.OnlineConfidence)
	applyFloat64("OFFLINE_CONFIDENCE", &c.Tutor.OfflineConfidence)
	applyFloat64("REDUCED_CONFIDENCE", &c.Tutor.ReducedConfidence)
	applyInt("MIN_ANSWER_RUNES", &c.Tutor.MinAnswerRunes)
	applyString("TUTOR_SUBJECT", &c.Tutor.Subject)
}

func (c *AppConfig) validate() error {
	if err := c.Chunking.Validate(); err != nil {
		return err
	}
	switch c.Store.Driver {
	case "json":
		if strings.TrimSpace(c.Store.ChunksPath) == "" {
			return fmt.Errorf("CHUNKS_PATH is required for the json store")
		}
	case "postgres":
		if strings.TrimSpace(c.Store.PostgresDSN) == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store driver %q (want json or postgres)", c.Store.Driver)
	}
	switch c.Retrieval.Mode {
	case "lexical", "vector":
	default:
		return fmt.Errorf("unknown retrieval mode %q (want lexical or vector)", c.Retrieval.Mode)
	}
	if c.Retrieval.Mode == "vector" && strings.TrimSpace(c.Online.APIKey) == "" {
		return fmt.Errorf("vector retrieval needs an embedding provider: set GROQ_API_KEY or OPENAI_API_KEY")
	}
	return nil
}

func applyString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func applyInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func applyFloat64(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			*target = n
		}
	}
}
