package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// ServerConfig 服务配置
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AskTimeout   time.Duration // 单次问答超时
	JWTSecret    string        // 管理路由 JWT 密钥（为空则不注册管理路由）
	JWTIssuer    string        // JWT 签发者（可选）
}

// DefaultServerConfig 默认配置
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		AskTimeout:   2 * time.Minute,
	}
}

// Server HTTP 服务器
type Server struct {
	config   *ServerConfig
	router   QueryRouter
	reloader Reloader
	httpSrv  *http.Server
}

// NewServer 创建服务器。reloader 可为 nil。
func NewServer(config *ServerConfig, router QueryRouter, reloader Reloader) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	return &Server{
		config:   config,
		router:   router,
		reloader: reloader,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.buildRouter(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	applog.Infof("🚀 Tutor API server starting on %s", addr)
	return s.httpSrv.ListenAndServe()
}

// Stop 优雅停机
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}

// Handler 返回 HTTP Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h := NewTutorHandler(s.router, s.reloader, s.config.AskTimeout)
	h.RegisterRoutes(r)

	if strings.TrimSpace(s.config.JWTSecret) != "" {
		jwtCfg := &JWTConfig{Secret: s.config.JWTSecret, Issuer: s.config.JWTIssuer}
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(jwtCfg))
			h.RegisterAdminRoutes(r)
		})
	} else {
		applog.Warn("[API] ⚠️ JWT_SECRET not set, admin routes disabled")
	}

	return r
}

// corsMiddleware CORS 中间件
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
