package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	applog "github.com/7Vedansh/Gyaan-Setu/internal/platform/log"
)

// minDetectRunes 低于该长度的输入直接判为默认语言，过短文本没有可靠信号。
const minDetectRunes = 3

// Detect 将自由文本归类到支持的语言集合。
//
// 规则优先级：
//  1. 过短输入 → 默认语言；
//  2. 含天城文字符 → 印地语或马拉地语，按关键词计数消歧，平局判印地语
//     （显式策略，两种语言混写时偏向覆盖面更大的印地语）；
//  3. 其余走统计检测器，失败或超出支持集合 → 默认语言。
//
// 无状态、确定性分类器，不依赖会话上下文。
func Detect(text string) Code {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minDetectRunes {
		return Default
	}

	if containsDevanagari(trimmed) {
		return disambiguateDevanagari(trimmed)
	}

	info := whatlanggo.Detect(trimmed)
	switch info.Lang {
	case whatlanggo.Eng:
		return English
	case whatlanggo.Hin:
		return Hindi
	case whatlanggo.Mar:
		return Marathi
	default:
		applog.Debug("[Lang] Statistical detector out of supported set, defaulting",
			"detected", whatlanggo.LangToString(info.Lang),
		)
		return Default
	}
}

// containsDevanagari 判断文本是否含天城文区间 (U+0900–U+097F) 字符。
func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

// disambiguateDevanagari 按关键词出现次数区分印地语与马拉地语。
func disambiguateDevanagari(text string) Code {
	mrCount := countKeywords(text, marathiKeywords)
	hiCount := countKeywords(text, hindiKeywords)

	applog.Debug("[Lang] Devanagari disambiguation",
		"marathi_hits", mrCount,
		"hindi_hits", hiCount,
	)

	if mrCount > hiCount {
		return Marathi
	}
	// 平局判印地语。
	return Hindi
}

func countKeywords(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, kw)
	}
	return total
}
