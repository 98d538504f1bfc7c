package tutor

import (
	"context"
	"strings"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/lang"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
)

// Backend 生成后端边界：给定问题、语言和可选上下文产出一个回答。
// 网络错误、超时、进程失败、空内容统一以 error 形式暴露，
// 路由层把所有失败信号同等看待。
type Backend interface {
	Generate(ctx context.Context, question string, language lang.Code, contextText string) (string, error)
}

// ── 在线后端 ─────────────────────────────────────────────────

// OnlineBackend 联网模型后端。不使用检索上下文，按语言套用系统提示词。
type OnlineBackend struct {
	providerName string
	model        string
	temperature  float64
	topP         float64
	maxTokens    int
}

// OnlineBackendConfig 在线后端配置。
type OnlineBackendConfig struct {
	Provider    string
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// NewOnlineBackend 创建在线后端。
func NewOnlineBackend(cfg OnlineBackendConfig) *OnlineBackend {
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return &OnlineBackend{
		providerName: cfg.Provider,
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		topP:         cfg.TopP,
		maxTokens:    cfg.MaxTokens,
	}
}

func (b *OnlineBackend) Generate(ctx context.Context, question string, language lang.Code, _ string) (string, error) {
	p, err := provider.GetProvider(b.providerName)
	if err != nil {
		return "", err
	}

	resp, err := p.Complete(ctx, &provider.CompletionRequest{
		Model: b.model,
		Messages: []provider.Message{
			{Role: "system", Content: SystemPrompt(language)},
			{Role: "user", Content: QuestionPrompt(language, question)},
		},
		Temperature: b.temperature,
		TopP:        b.topP,
		MaxTokens:   b.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// ── 本地生成后端 ─────────────────────────────────────────────

// LocalBackend 本地模型后端。回答必须基于检索到的教材上下文。
type LocalBackend struct {
	providerName string
	model        string
	maxTokens    int
}

// NewLocalBackend 创建本地生成后端。
func NewLocalBackend(providerName, model string, maxTokens int) *LocalBackend {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &LocalBackend{providerName: providerName, model: model, maxTokens: maxTokens}
}

func (b *LocalBackend) Generate(ctx context.Context, question string, language lang.Code, contextText string) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		// 没有资料就不生成，交由路由层给出固定话术。
		return "", nil
	}

	p, err := provider.GetProvider(b.providerName)
	if err != nil {
		return "", err
	}

	resp, err := p.Complete(ctx, &provider.CompletionRequest{
		Model: b.model,
		Messages: []provider.Message{
			{Role: "user", Content: GroundedPrompt(language, contextText, question)},
		},
		MaxTokens: b.maxTokens,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// ── 抽取式后端 ───────────────────────────────────────────────

// ExtractiveBackend 无本地模型时的退化实现：直接回传检索到的教材片段
// （按行去重后）。保证离线路径在任何部署形态下都可用。
type ExtractiveBackend struct{}

func (ExtractiveBackend) Generate(_ context.Context, _ string, _ lang.Code, contextText string) (string, error) {
	return strings.TrimSpace(retrieval.DedupeLines(contextText)), nil
}
