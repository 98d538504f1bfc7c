package bootstrap

import (
	"github.com/7Vedansh/Gyaan-Setu/internal/adapter/provider/llm/localexec"
	"github.com/7Vedansh/Gyaan-Setu/internal/adapter/provider/llm/openai"
	"github.com/7Vedansh/Gyaan-Setu/internal/platform/config"
	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
)

// RegisterLLMProviders 按配置注册可用的 LLM 提供商。
// 返回在线提供商（可能为 nil，表示纯离线部署）。
func RegisterLLMProviders(cfg *config.AppConfig) *openai.Provider {
	var online *openai.Provider

	if cfg.Online.APIKey != "" {
		online = openai.New(openai.Config{
			APIKey:         cfg.Online.APIKey,
			BaseURL:        cfg.Online.BaseURL,
			TimeoutSeconds: cfg.Online.TimeoutSeconds,
		})
		provider.RegisterProvider(online)
		applog.Infof("✅ Registered LLM provider: %s (base: %s, model: %s)",
			online.Name(), cfg.Online.BaseURL, cfg.Online.Model)
	} else {
		applog.Warn("⚠️ No GROQ_API_KEY set, online answering disabled")
	}

	if cfg.Local.Command != "" {
		local := localexec.New(localexec.Config{
			Command:        cfg.Local.Command,
			Args:           cfg.Local.Args,
			TimeoutSeconds: cfg.Local.TimeoutSeconds,
		})
		provider.RegisterProvider(local)
		applog.Infof("✅ Registered LLM provider: %s (command: %s)", local.Name(), cfg.Local.Command)
	}

	return online
}
