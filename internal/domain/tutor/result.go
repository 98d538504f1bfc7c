package tutor

import "github.com/7Vedansh/Gyaan-Setu/internal/domain/lang"

// Mode 标识最终答案出自哪条生成路径。
type Mode string

const (
	ModeOnline  Mode = "online"  // 主后端（联网模型）
	ModeOffline Mode = "offline" // 回退路径（检索 + 本地生成）
	ModeError   Mode = "error"   // 两条路径均失败
)

// RouterResult 路由的唯一出参。每次调用恰好设置一种 Mode；
// 置信度是按 Mode 固定的常量档位，error 是唯一会给出 0 的状态。
type RouterResult struct {
	Text       string    `json:"text"`
	Mode       Mode      `json:"mode"`
	Confidence float64   `json:"confidence"`
	Language   lang.Code `json:"language"`
}
