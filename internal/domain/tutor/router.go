package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/lang"
	"github.com/7Vedansh/Gyaan-Setu/internal/domain/retrieval"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// AnswerCache 答案缓存（可选）。独立问题的结果可复用，不保存会话状态。
type AnswerCache interface {
	Get(ctx context.Context, question string) (*RouterResult, bool)
	Set(ctx context.Context, question string, result *RouterResult)
}

// Config 路由配置。置信度是按 Mode 固定的档位常量。
type Config struct {
	OnlineConfidence  float64 // online 档位
	OfflineConfidence float64 // offline 正常档位
	ReducedConfidence float64 // offline 无可用答案时的降档
	MinAnswerRunes    int     // 回答最短长度（trim 后按 rune 计）
	PrimaryTimeout    time.Duration
	FallbackTimeout   time.Duration
	Subject           string // 非空时检索限定到该学科分区
}

// DefaultConfig 默认路由配置。
func DefaultConfig() Config {
	return Config{
		OnlineConfidence:  0.92,
		OfflineConfidence: 0.75,
		ReducedConfidence: 0.40,
		MinAnswerRunes:    20,
		PrimaryTimeout:    30 * time.Second,
		FallbackTimeout:   60 * time.Second,
	}
}

// Router 核心状态机：
//
//	DetectLanguage → TryPrimary → {Succeeded | TryFallback}
//	              → {FallbackSucceeded | FallbackFailed} → Done
//
// 语言只检测一次，主后端不重试，回退只尝试一次，任何失败都不会越过
// Route 边界——每条退出路径都产出一个完整的 RouterResult。
// Router 无跨调用可变状态，独立问题可并发路由。
type Router struct {
	cfg       Config
	detect    func(string) lang.Code
	primary   Backend
	secondary Backend
	retriever retrieval.Retriever
	cache     AnswerCache // 可选
}

// NewRouter 创建路由。依赖全部显式注入，不依赖包级单例。
func NewRouter(cfg Config, detect func(string) lang.Code, primary, secondary Backend, retriever retrieval.Retriever) *Router {
	if detect == nil {
		detect = lang.Detect
	}
	return &Router{
		cfg:       cfg,
		detect:    detect,
		primary:   primary,
		secondary: secondary,
		retriever: retriever,
	}
}

// SetCache 设置答案缓存。
func (r *Router) SetCache(c AnswerCache) {
	r.cache = c
}

// Route 路由一个学生问题。这是核心对外的唯一入口。
func (r *Router) Route(ctx context.Context, question string) RouterResult {
	language := lang.Normalize(r.detect(question))

	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, question); ok && cached.Language == language {
			applog.Debug("[Tutor] Cache hit", "language", language)
			return *cached
		}
	}

	// TryPrimary
	answer, err := r.tryPrimary(ctx, question, language)
	if err == nil && r.usable(answer) {
		result := RouterResult{
			Text:       answer,
			Mode:       ModeOnline,
			Confidence: r.cfg.OnlineConfidence,
			Language:   language,
		}
		r.storeCache(ctx, question, result)
		return result
	}

	if err != nil {
		applog.Warn("[Tutor] Primary backend failed, switching to fallback",
			"language", language,
			"error", err,
		)
	} else {
		applog.Warn("[Tutor] Primary answer below minimum length, switching to fallback",
			"language", language,
		)
	}

	// TryFallback
	result := r.tryFallback(ctx, question, language)
	if result.Mode != ModeError {
		r.storeCache(ctx, question, result)
	}
	return result
}

// tryPrimary 调用主后端，panic 与超时一律折算为错误。
func (r *Router) tryPrimary(ctx context.Context, question string, language lang.Code) (answer string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("primary backend panic: %v", rec)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.PrimaryTimeout)
	defer cancel()

	return r.primary.Generate(callCtx, question, language, "")
}

// tryFallback 检索 + 本地生成。回退自身出错时进入唯一的 error 终态。
func (r *Router) tryFallback(ctx context.Context, question string, language lang.Code) (result RouterResult) {
	defer func() {
		if rec := recover(); rec != nil {
			applog.Error("[Tutor] Fallback panic", "panic", rec)
			result = r.errorResult(language)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, r.cfg.FallbackTimeout)
	defer cancel()

	ret, err := r.retriever.Retrieve(callCtx, question, r.cfg.Subject)
	if err != nil {
		applog.Error("[Tutor] Retrieval failed", "error", err)
		return r.errorResult(language)
	}

	answer, err := r.secondary.Generate(callCtx, question, language, ret.Context)
	if err != nil {
		applog.Error("[Tutor] Fallback backend failed", "error", err)
		return r.errorResult(language)
	}

	answer = strings.TrimSpace(retrieval.DedupeLines(answer))
	if !r.usable(answer) {
		applog.Info("[Tutor] Fallback produced no usable answer",
			"language", language,
			"retrieval_confidence", ret.Confidence,
		)
		return RouterResult{
			Text:       InsufficientMessage(language),
			Mode:       ModeOffline,
			Confidence: r.cfg.ReducedConfidence,
			Language:   language,
		}
	}

	applog.Info("[Tutor] Answered offline",
		"language", language,
		"retrieval_confidence", ret.Confidence,
	)
	return RouterResult{
		Text:       answer,
		Mode:       ModeOffline,
		Confidence: r.cfg.OfflineConfidence,
		Language:   language,
	}
}

// usable 回答 trim 后长度需超过最短门槛；“技术上成功但几乎为空”按失败处理。
func (r *Router) usable(answer string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(answer)) > r.cfg.MinAnswerRunes
}

// errorResult 唯一会给出零置信度的终态。
func (r *Router) errorResult(language lang.Code) RouterResult {
	return RouterResult{
		Text:       ApologyMessage(language),
		Mode:       ModeError,
		Confidence: 0.0,
		Language:   language,
	}
}

func (r *Router) storeCache(ctx context.Context, question string, result RouterResult) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, question, &result)
}
