package retrieval

// 词法检索的停用词表，覆盖英语、印地语、马拉地语的高频虚词。
// 显式数据表，扩充无需改动打分逻辑。
//
// 表版本: v2 (2025-11)
var stopwords = map[string]struct{}{
	// 英语
	"is": {}, "are": {}, "was": {}, "were": {},
	"the": {}, "a": {}, "an": {},
	"what": {}, "why": {}, "how": {}, "when": {}, "where": {}, "which": {},
	"and": {}, "or": {}, "of": {}, "to": {}, "in": {}, "on": {}, "for": {},
	"with": {}, "does": {}, "do": {},

	// 印地语
	"क्या": {}, "कैसे": {}, "क्यों": {}, "है": {}, "हैं": {},
	"में": {}, "का": {}, "की": {}, "के": {}, "और": {},

	// 马拉地语
	"आहे": {}, "आहेत": {}, "मध्ये": {}, "म्हणजे": {}, "आणि": {}, "काय": {},
}

func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
