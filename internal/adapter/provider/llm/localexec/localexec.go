package localexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
	"github.com/7Vedansh/Gyaan-Setu/internal/provider"
)

// Config 子进程生成后端配置。
type Config struct {
	Name           string   `json:"name"`    // 注册名，默认 "localexec"
	Command        string   `json:"command"` // 可执行文件路径（如 llama.cpp 的 main）
	Args           []string `json:"args"`    // 固定参数；prompt 走 stdin
	TimeoutSeconds int      `json:"timeout_seconds"`
}

// Provider 通过外部进程做本地生成。prompt 写入 stdin，回答从 stdout 读取，
// stderr 一并捕获进诊断日志。路由层只看到 generate(prompt) -> answer 的能力，
// 不感知具体执行方式。
type Provider struct {
	name    string
	command string
	args    []string
	timeout time.Duration
}

// New 创建子进程 Provider。
func New(config Config) *Provider {
	if config.Name == "" {
		config.Name = "localexec"
	}
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Provider{
		name:    config.Name,
		command: config.Command,
		args:    config.Args,
		timeout: timeout,
	}
}

func (p *Provider) Name() string {
	return p.name
}

// Complete 把消息串接成单个 prompt 交给子进程。超时即杀进程并按失败处理，
// 任何调用都不会无限阻塞。
func (p *Provider) Complete(ctx context.Context, req *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	if p.command == "" {
		return nil, fmt.Errorf("localexec: no command configured")
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := flattenMessages(req.Messages)

	cmd := exec.CommandContext(runCtx, p.command, p.args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		applog.Warn("[LocalExec] Generation timed out",
			"command", p.command,
			"timeout", p.timeout,
		)
		return nil, fmt.Errorf("localexec: generation timed out after %s", p.timeout)
	}
	if err != nil {
		applog.Warn("[LocalExec] Process failed",
			"command", p.command,
			"error", err,
			"stderr", truncate(stderr.String(), 300),
		)
		return nil, fmt.Errorf("localexec: run %s: %w", p.command, err)
	}

	answer := strings.TrimSpace(stdout.String())
	if answer == "" {
		return nil, fmt.Errorf("localexec: empty output from %s", p.command)
	}

	applog.Debug("[LocalExec] Generation done",
		"command", p.command,
		"answer_length", len(answer),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return &provider.CompletionResponse{
		Content:      answer,
		Model:        p.command,
		FinishReason: "stop",
	}, nil
}

// flattenMessages 将对话消息展平为单个 prompt 文本。
func flattenMessages(messages []provider.Message) string {
	var sb strings.Builder
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
