package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
)

// Config OpenAI 兼容 API 配置。
type Config struct {
	Name           string `json:"name"`     // 注册名，默认 "openai"
	APIKey         string `json:"api_key"`  // 必填
	BaseURL        string `json:"base_url"` // 默认 https://api.openai.com/v1；Groq 填其 openai 兼容端点
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Provider OpenAI 兼容的 LLM Provider。
// 支持所有 OpenAI API 兼容服务（OpenAI, Groq, DeepSeek, Ollama 等）。
type Provider struct {
	name   string
	client *goopenai.Client
}

// New 创建 OpenAI 兼容 Provider。
func New(config Config) *Provider {
	if config.Name == "" {
		config.Name = "openai"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cfg := goopenai.DefaultConfig(config.APIKey)
	cfg.BaseURL = strings.TrimRight(config.BaseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Provider{
		name:   config.Name,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (p *Provider) Name() string {
	return p.name
}

// Complete 非流式补全。
func (p *Provider) Complete(ctx context.Context, req *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: empty choices")
	}

	choice := resp.Choices[0]
	return &provider.CompletionResponse{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: provider.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// ── Embedder ─────────────────────────────────────────────────

// Embedder 基于同一 OpenAI 兼容端点的向量化实现（retrieval.Embedder）。
type Embedder struct {
	p     *Provider
	model string
	dims  int
}

// NewEmbedder 创建向量化客户端。
func NewEmbedder(p *Provider, model string, dims int) *Embedder {
	if model == "" {
		model = "text-embedding-3-small"
	}
	if dims <= 0 {
		dims = 1536
	}
	return &Embedder{p: p, model: model, dims: dims}
}

// Dims 返回向量维度。
func (e *Embedder) Dims() int {
	return e.dims
}

// Embed 批量生成向量，按 Index 对齐输入顺序。
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.p.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Model: goopenai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for i := range d.Embedding {
			vec[i] = float32(d.Embedding[i])
		}
		out[d.Index] = vec
	}
	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("embeddings: missing vector for input %d", i)
		}
	}
	return out, nil
}
