package lang

// 印地语/马拉地语关键词表。两种语言共用天城文，单靠 Unicode 区间无法区分，
// 通过人工整理的高频虚词计数消歧。表为显式数据，便于单独测试和扩充，
// 调整控制流无需改动。
//
// 表版本: v2 (2025-11)

// marathiKeywords 马拉地语特征词。
var marathiKeywords = []string{
	"आहे",
	"आहेत",
	"म्हणजे",
	"मध्ये",
	"काय",
	"कसे",
	"सांग",
	"समजाव",
	"का",
	"आणि",
	"होते",
	"असते",
}

// hindiKeywords 印地语特征词。
var hindiKeywords = []string{
	"है",
	"हैं",
	"क्या",
	"कैसे",
	"क्यों",
	"में",
	"का",
	"की",
	"के",
	"और",
	"होता",
	"होती",
	"बताओ",
	"समझाओ",
}
