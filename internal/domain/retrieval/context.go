package retrieval

import "strings"

// DedupeLines 按行去重（大小写敏感的精确匹配，保留首次出现顺序）。
// 本地生成器容易产出重复行，拼接上下文或回传答案前做一次清理。
func DedupeLines(text string) string {
	lines := strings.Split(text, "\n")
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
