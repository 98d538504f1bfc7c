package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
)

// fakeLLM 可编程的改写后端：记录调用次数，返回固定内容或错误。
type fakeLLM struct {
	calls int
	reply string
	err   error
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) Complete(_ context.Context, _ *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &provider.CompletionResponse{Content: f.reply}, nil
}

const longRewrite = "Friction is the force that resists relative motion between two surfaces " +
	"in contact, and it always acts opposite to the direction of sliding."

func TestEnrichUsesConfiguredMaxLength(t *testing.T) {
	llm := &fakeLLM{reply: longRewrite}
	enricher := NewEnricher(llm, "", time.Second)

	// 组装管线后，超长判定应采用管线的配置值而非默认值。
	if _, err := NewPipeline(testThresholds(), enricher); err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	text := "A rolling ball slows down because friction acts between the ball and the ground it moves on."
	got := enricher.Enrich(context.Background(), text)
	if llm.calls != 1 {
		t.Fatalf("expected one rewrite call with max=%d, got %d calls", testThresholds().Max, llm.calls)
	}
	if got != longRewrite {
		t.Fatalf("expected rewritten text, got %q", got)
	}
	t.Logf("✅ 超长判定采用管线配置的上限")
}

func TestEnrichDefaultMaxSkipsModerateText(t *testing.T) {
	llm := &fakeLLM{reply: longRewrite}
	enricher := NewEnricher(llm, "", time.Second)

	text := "A rolling ball slows down because friction acts between the ball and the ground it moves on."
	got := enricher.Enrich(context.Background(), text)
	if llm.calls != 0 {
		t.Fatalf("moderate prose should not be rewritten under default thresholds, got %d calls", llm.calls)
	}
	if got != text {
		t.Fatalf("expected original text, got %q", got)
	}
	t.Logf("✅ 默认上限下中等长度正文不触发改写")
}

func TestEnrichKeepsOriginalOnBackendError(t *testing.T) {
	llm := &fakeLLM{err: errors.New("backend down")}
	enricher := NewEnricher(llm, "", time.Second)

	text := "v | t | s | a | F " + strings.Repeat("| 1 ", 4)
	got := enricher.Enrich(context.Background(), text)
	if llm.calls != 1 {
		t.Fatalf("expected one rewrite attempt, got %d", llm.calls)
	}
	if got != text {
		t.Fatalf("backend error must keep the original text, got %q", got)
	}
	t.Logf("✅ 后端出错时保留原文")
}

func TestEnrichKeepsOriginalOnShortRewrite(t *testing.T) {
	llm := &fakeLLM{reply: "too short"}
	enricher := NewEnricher(llm, "", time.Second)

	text := "v | t | s | a | F " + strings.Repeat("| 1 ", 4)
	got := enricher.Enrich(context.Background(), text)
	if got != text {
		t.Fatalf("short rewrite must keep the original text, got %q", got)
	}
	t.Logf("✅ 过短的改写结果被拒绝")
}
