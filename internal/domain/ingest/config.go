package ingest

import "fmt"

// Thresholds 分块的三档字符阈值与有效性门槛。
// 必须满足 CombineUnder < NewAfter < Max，违反即配置错误。
type Thresholds struct {
	Max          int `json:"max_chars"`           // 任何块的硬上限
	NewAfter     int `json:"new_after_chars"`     // 累积超过即开新块
	CombineUnder int `json:"combine_under_chars"` // 低于该长度并入邻块
	MinChars     int `json:"min_chars"`           // 有效块最短长度
	MinSentences int `json:"min_sentences"`       // 有效块最少句末标点数
}

// DefaultThresholds 默认阈值。
func DefaultThresholds() Thresholds {
	return Thresholds{
		Max:          1500,
		NewAfter:     1200,
		CombineUnder: 300,
		MinChars:     150,
		MinSentences: 2,
	}
}

// Validate 校验阈值顺序。
func (t Thresholds) Validate() error {
	if t.Max <= 0 || t.NewAfter <= 0 || t.CombineUnder <= 0 {
		return fmt.Errorf("chunk thresholds must be positive: max=%d new_after=%d combine_under=%d",
			t.Max, t.NewAfter, t.CombineUnder)
	}
	if !(t.CombineUnder < t.NewAfter && t.NewAfter < t.Max) {
		return fmt.Errorf("chunk thresholds must satisfy combine_under < new_after < max, got %d/%d/%d",
			t.CombineUnder, t.NewAfter, t.Max)
	}
	if t.MinChars < 0 || t.MinSentences < 0 {
		return fmt.Errorf("validity thresholds must be non-negative")
	}
	return nil
}
