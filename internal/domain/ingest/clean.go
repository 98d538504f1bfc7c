package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// 扫描版教材常见的 OCR 错字修正表（天城文）。逐条替换，对英文内容无副作用。
//
// 表版本: v2 (2025-11)
var ocrFixes = [][2]string{
	{"सृष्ी", "सृष्टी"},
	{"वन्पती", "वनस्पती"},
	{"प्रोलट्टा", "प्रोटिस्टा"},
	{"लवषाणू", "विषाणू"},
	{"लवभार्णी", "विभागणी"},
	{"लललहताना", "लिहिताना"},
	{"सव्व", "सर्व"},
	{"द्वहटाकर", "व्हिटेकर"},
	{"आलदकेंद्रकी", "आदिकेंद्रकी"},
	{"दृश्केंद्रकी", "दृश्यकेंद्रकी"},
}

// runningHeaders 页眉词：独立出现时属于排版噪声，整词删除。
var runningHeaders = []string{"SCIENCE"}

var (
	reFigCaption   = regexp.MustCompile(`Fig\.?\s*\d+(?:\.\d+)*\s*:[^\n]*`)
	reEquationLine = regexp.MustCompile(`^[A-Za-z0-9\s=+\-()./^×÷]+$`)
	reBullet       = regexp.MustCompile(`[•●▪]`)
	reWhitespace   = regexp.MustCompile(`\s+`)
)

// CleanText 清洗单个块：去图注、去公式/数字噪声行、去页眉、修 OCR 错字、
// 折叠空白。结果保证无多余空白、无排版残留。
func CleanText(text string) string {
	// 图注行："Fig 8.4: ..."
	text = reFigCaption.ReplaceAllString(text, "")

	// 纯公式/数字噪声行："F = ma (8.4)"、"27 × 3 = 81"
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isEquationNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, " ")

	// 页眉词
	for _, header := range runningHeaders {
		text = regexp.MustCompile(`\b`+regexp.QuoteMeta(header)+`\b`).ReplaceAllString(text, "")
	}

	// OCR 修正
	for _, fix := range ocrFixes {
		text = strings.ReplaceAll(text, fix[0], fix[1])
	}

	// 项目符号与空白折叠
	text = reBullet.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// isEquationNoise 判断一行是否为公式/数字噪声：仅由公式字符组成，
// 且含等号或数字占比过高。带两个以上长单词的行按正文处理——
// 正文句子里夹带内联公式（"... written as F = ma."）不算噪声行。
func isEquationNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if !reEquationLine.MatchString(trimmed) {
		return false
	}
	words := 0
	for _, w := range strings.Fields(trimmed) {
		letters := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters >= 4 {
			words++
		}
	}
	if words >= 2 {
		return false
	}
	if strings.ContainsAny(trimmed, "=^") {
		return true
	}
	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits*3 > len([]rune(trimmed))
}

// sentenceMarks 句末标点：西文句号/问号/叹号与天城文句号（danda）。
const sentenceMarks = ".?!।"

// CountSentenceMarks 统计句末标点数量。
func CountSentenceMarks(text string) int {
	count := 0
	for _, r := range text {
		if strings.ContainsRune(sentenceMarks, r) {
			count++
		}
	}
	return count
}

// IsValidChunk 有效性过滤：太短的碎片和不成文的片段（孤立标签、标题）
// 一律丢弃，摄取继续进行（数据错误不致命于整批）。
func IsValidChunk(text string, th Thresholds) bool {
	if len([]rune(text)) < th.MinChars {
		return false
	}
	return CountSentenceMarks(text) >= th.MinSentences
}
