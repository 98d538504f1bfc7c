package ingest

import (
	"strings"
	"unicode/utf8"
)

// BuildChunks 把已分段的原始元素按三档阈值聚合成块：
//
//   - 连续元素在运行字符预算内归入同一块，累积超过 NewAfter 即开新块；
//   - 短于 CombineUnder 的块并入前一块；
//   - 任何块硬切到 Max 以内。
//
// 元素之间以换行相接：清洗阶段的图注/公式规则按行工作，
// 行边界必须保留到 CleanText 之后（最终空白由 CleanText 折叠）。
// 输入元素顺序即语料顺序，输出块保持源序。
func BuildChunks(elements []string, th Thresholds) []string {
	var grouped []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if current.Len() > 0 {
			grouped = append(grouped, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, el := range elements {
		el = strings.TrimSpace(el)
		if el == "" {
			continue
		}
		elLen := utf8.RuneCountInString(el)

		if currentLen > 0 && currentLen+1+elLen > th.NewAfter {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n")
			currentLen++
		}
		current.WriteString(el)
		currentLen += elLen
	}
	flush()

	merged := mergeShort(grouped, th.CombineUnder)
	return hardCap(merged, th.Max)
}

// mergeShort 将过短的块并入前一块；首块过短则并入后一块。
func mergeShort(chunks []string, combineUnder int) []string {
	if len(chunks) <= 1 {
		return chunks
	}
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if len(out) > 0 && utf8.RuneCountInString(c) < combineUnder {
			out[len(out)-1] = out[len(out)-1] + "\n" + c
			continue
		}
		out = append(out, c)
	}
	// 首块本身过短时向后并。
	if len(out) > 1 && utf8.RuneCountInString(out[0]) < combineUnder {
		out[1] = out[0] + "\n" + out[1]
		out = out[1:]
	}
	return out
}

// hardCap 超过 Max 的块按 rune 硬切分。
func hardCap(chunks []string, max int) []string {
	var out []string
	for _, c := range chunks {
		runes := []rune(c)
		for len(runes) > max {
			out = append(out, strings.TrimSpace(string(runes[:max])))
			runes = runes[max:]
		}
		if rest := strings.TrimSpace(string(runes)); rest != "" {
			out = append(out, rest)
		}
	}
	return out
}
