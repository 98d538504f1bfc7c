package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/tutor"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// maxQuestionRunes 问题长度上限，超过直接拒绝。
const maxQuestionRunes = 2000

// QueryRouter 问答入口。
type QueryRouter interface {
	Route(ctx context.Context, question string) tutor.RouterResult
}

// Reloader 语料重载入口（管理路由）。
type Reloader interface {
	Reload(ctx context.Context) error
}

// TutorHandler 问答 API
type TutorHandler struct {
	router     QueryRouter
	reloader   Reloader
	askTimeout time.Duration
}

// NewTutorHandler 创建问答 Handler
func NewTutorHandler(router QueryRouter, reloader Reloader, askTimeout time.Duration) *TutorHandler {
	if askTimeout <= 0 {
		askTimeout = 2 * time.Minute
	}
	return &TutorHandler{
		router:     router,
		reloader:   reloader,
		askTimeout: askTimeout,
	}
}

// RegisterRoutes 注册公开路由
func (h *TutorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/predict", h.Predict)
}

// RegisterAdminRoutes 注册管理路由
func (h *TutorHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/admin/reload", h.Reload)
}

// predictRequest 问答请求体
type predictRequest struct {
	Question string `json:"question"`
}

// Predict POST /predict — 学生问答
func (h *TutorHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		writeError(w, http.StatusBadRequest, "question is too long")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.askTimeout)
	defer cancel()

	start := time.Now()
	result := h.router.Route(ctx, question)
	applog.Info("[API] Question answered",
		"mode", result.Mode,
		"language", result.Language,
		"confidence", result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, result)
}

// Reload POST /admin/reload — 重载语料并重建检索器
func (h *TutorHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		writeError(w, http.StatusNotImplemented, "corpus reload is not configured")
		return
	}

	if err := h.reloader.Reload(r.Context()); err != nil {
		applog.Error("[API] ❌ Corpus reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Reload failed: "+err.Error())
		return
	}

	applog.Info("[API] ✅ Corpus reloaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}
