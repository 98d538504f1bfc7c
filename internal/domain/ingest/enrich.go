package ingest

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// ── 摘要增润 ─────────────────────────────────────────────────

const enrichSystemPrompt = "You rewrite textbook fragments for a study corpus. " +
	"Rewrite the given fragment as clear connected prose. Keep every formula, " +
	"symbol, number and unit exactly as written. Do not add facts that are not " +
	"in the fragment. Answer with the rewritten text only."

// Enricher 用 LLM 把表格状/超长块改写成检索友好的连贯文段。
// 改写失败时一律保留原文，摄取不因增润出错而中断。
type Enricher struct {
	llm        provider.LLMProvider
	model      string
	timeout    time.Duration
	minResult  int        // 改写结果短于此字符数视为失败
	thresholds Thresholds // 超长判定用管线的配置值，由 NewPipeline 注入
}

// NewEnricher 创建增润器。model 为空使用提供商默认模型。
func NewEnricher(llm provider.LLMProvider, model string, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Enricher{
		llm:        llm,
		model:      model,
		timeout:    timeout,
		minResult:  80,
		thresholds: DefaultThresholds(),
	}
}

// needsEnrichment 判断块是否值得送改写：表格残渣或密排数据。
func needsEnrichment(text string, th Thresholds) bool {
	if strings.Count(text, "|") >= 4 || strings.Count(text, "\t") >= 4 {
		return true
	}
	// 数字占比过高通常是提取坏掉的数据表。
	digits := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	runes := utf8.RuneCountInString(text)
	if runes > 0 && digits*5 > runes {
		return true
	}
	return runes > th.Max
}

// Enrich 改写单块。不满足条件或改写失败时原样返回。
func (e *Enricher) Enrich(ctx context.Context, text string) string {
	if e == nil || e.llm == nil || !needsEnrichment(text, e.thresholds) {
		return text
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.llm.Complete(cctx, &provider.CompletionRequest{
		Model: e.model,
		Messages: []provider.Message{
			{Role: "system", Content: enrichSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.2,
		MaxTokens:   1024,
	})
	if err != nil {
		applog.Warn("[Ingest/Enrich] Rewrite failed, keeping original", "error", err)
		return text
	}

	rewritten := strings.TrimSpace(resp.Content)
	if utf8.RuneCountInString(rewritten) < e.minResult {
		applog.Warn("[Ingest/Enrich] Rewrite too short, keeping original",
			"result_runes", utf8.RuneCountInString(rewritten))
		return text
	}
	return rewritten
}
