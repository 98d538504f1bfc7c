package lang

// Code 支持的语言代码（封闭枚举）。
type Code string

const (
	English Code = "en"
	Hindi   Code = "hi"
	Marathi Code = "mr"
)

// Default 默认语言。检测失败或超出支持范围时统一回退到英语。
const Default = English

// Supported 判断 code 是否在支持范围内。
func Supported(c Code) bool {
	switch c {
	case English, Hindi, Marathi:
		return true
	}
	return false
}

// Normalize 将任意来源的语言代码归一化到支持集合，越界一律归为默认语言。
func Normalize(c Code) Code {
	if Supported(c) {
		return c
	}
	return Default
}

// Name 返回语言的展示名称。
func (c Code) Name() string {
	switch c {
	case Hindi:
		return "हिंदी (Hindi)"
	case Marathi:
		return "मराठी (Marathi)"
	default:
		return "English"
	}
}
