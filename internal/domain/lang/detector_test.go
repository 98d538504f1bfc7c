package lang

import "testing"

// TestDetectSupportedLanguages 测试三种支持语言的基本识别。
func TestDetectSupportedLanguages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Code
	}{
		{"hindi question", "बल क्या है?", Hindi},
		{"marathi question", "जडत्व म्हणजे काय?", Marathi},
		{"english question", "What is force?", English},
		{"hindi longer", "न्यूटन का पहला नियम क्या है और यह कैसे काम करता है?", Hindi},
		{"marathi longer", "प्रकाशाचे परावर्तन म्हणजे काय ते समजावून सांग", Marathi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// TestDetectShortInputDefaults 过短输入直接判默认语言。
func TestDetectShortInputDefaults(t *testing.T) {
	for _, text := range []string{"", "a", "ab", "  x  ", "ह"} {
		if got := Detect(text); got != Default {
			t.Errorf("Detect(%q) = %q, want default %q", text, got, Default)
		}
	}
}

// TestDetectDevanagariNeverEnglish 含天城文的输入绝不会判为英语。
func TestDetectDevanagariNeverEnglish(t *testing.T) {
	texts := []string{
		"गुरुत्वाकर्षण किसे कहते हैं",
		"ऊर्जा अक्षय्यता",
		"mixed text with ध्वनि inside",
	}
	for _, text := range texts {
		if got := Detect(text); got == English {
			t.Errorf("Detect(%q) = en, want hi or mr", text)
		}
	}
}

// TestDetectTieResolvesToHindi 关键词计数平局时按既定策略判印地语。
func TestDetectTieResolvesToHindi(t *testing.T) {
	// 无任何关键词命中 → 双方计数 0，平局。
	if got := Detect("ध्वनि ऊर्जा प्रकाश"); got != Hindi {
		t.Errorf("tie case = %q, want hi", got)
	}
}

// TestNormalize 越界代码统一归一化为默认语言。
func TestNormalize(t *testing.T) {
	tests := []struct {
		in   Code
		want Code
	}{
		{"en", English},
		{"hi", Hindi},
		{"mr", Marathi},
		{"fr", English},
		{"", English},
		{"hindi", English},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestDetectUnsupportedStatisticalResult 统计检测器返回的非支持语言回退到默认语言。
func TestDetectUnsupportedStatisticalResult(t *testing.T) {
	// 法语文本：统计检测器应给出 fra，超出支持集合。
	if got := Detect("Bonjour, comment allez-vous aujourd'hui mes amis?"); got != Default {
		t.Errorf("french input = %q, want default %q", got, Default)
	}
}
