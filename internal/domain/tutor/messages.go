package tutor

import (
	"fmt"

	"github.com/7Vedansh/Gyaan-Setu/internal/domain/lang"
)

// 语言相关的提示词与固定话术。全部为显式数据表：
// 新增语言或调整话术不触碰路由控制流。

// systemPrompts 在线模型的系统提示词。
var systemPrompts = map[lang.Code]string{
	lang.English: `You are an expert AI tutor specializing in science education.

Your role:
- Provide clear, accurate explanations tailored to the student's level
- Use analogies and examples to make concepts relatable
- Break down complex topics into digestible parts
- Encourage understanding over memorization
- Stay focused on the question asked

Guidelines:
- Answer ONLY what is asked - no extra topics
- Use proper scientific terminology with simple explanations
- Include relevant formulas when applicable
- Answer only in english.
- Keep responses concise but complete
- Never fabricate information`,

	lang.Hindi: `आप विज्ञान शिक्षा में विशेषज्ञ AI ट्यूटर हैं।

आपकी भूमिका:
- छात्र के स्तर के अनुसार स्पष्ट, सटीक स्पष्टीकरण प्रदान करें
- अवधारणाओं को समझने योग्य बनाने के लिए उदाहरण और सादृश्य का उपयोग करें
- जटिल विषयों को सरल भागों में विभाजित करें
- रटने की बजाय समझ को प्रोत्साहित करें
- पूछे गए प्रश्न पर केंद्रित रहें

दिशानिर्देश:
- केवल पूछे गए प्रश्न का उत्तर दें - कोई अतिरिक्त विषय नहीं
- सरल व्याख्या के साथ उचित वैज्ञानिक शब्दावली का उपयोग करें
- जहां लागू हो प्रासंगिक सूत्र शामिल करें
- उत्तर संक्षिप्त लेकिन पूर्ण रखें
- कभी भी काल्पनिक जानकारी न दें`,

	lang.Marathi: `तुम्ही विज्ञान शिक्षणात तज्ञ AI शिक्षक आहात।

तुमची भूमिका:
- विद्यार्थ्याच्या पातळीनुसार स्पष्ट, अचूक स्पष्टीकरण द्या
- संकल्पना समजण्यासाठी उदाहरणे आणि साधर्म्य वापरा
- गुंतागुंतीचे विषय सोप्या भागात विभाजित करा
- पाठ करण्याऐवजी समजून घेण्यास प्रोत्साहन द्या
- विचारलेल्या प्रश्नावर केंद्रित रहा

मार्गदर्शक तत्त्वे:
- फक्त विचारलेल्या प्रश्नाचे उत्तर द्या - कोणतेही अतिरिक्त विषय नाहीत
- सोप्या स्पष्टीकरणासह योग्य वैज्ञानिक शब्दावली वापरा
- जिथे लागू असेल तिथे संबंधित सूत्रे समाविष्ट करा
- उत्तरे संक्षिप्त पण पूर्ण ठेवा
- कधीही काल्पनिक माहिती देऊ नका`,
}

// questionTemplates 在线模型的用户提示模板。
var questionTemplates = map[lang.Code]string{
	lang.English: `Answer the following question clearly and accurately.

Question: %s

Provide a focused, educational response.`,

	lang.Hindi: `निम्नलिखित प्रश्न का स्पष्ट और सटीक उत्तर दें। पूरा उत्तर केवल हिंदी में होना चाहिए।

प्रश्न: %s

एक केंद्रित, शैक्षिक प्रतिक्रिया प्रदान करें।`,

	lang.Marathi: `खालील प्रश्नाचे स्पष्ट आणि अचूक उत्तर द्या. संपूर्ण उत्तर फक्त मराठीत असावे.

प्रश्न: %s

एक केंद्रित, शैक्षणिक प्रतिसाद द्या.`,
}

// groundedTemplates 离线模型的用户提示模板：回答必须基于给定教材片段。
var groundedTemplates = map[lang.Code]string{
	lang.English: `Use ONLY the textbook excerpts below to answer the question. Do not add outside facts.

Excerpts:
%s

Question: %s`,

	lang.Hindi: `केवल नीचे दिए गए पाठ्यपुस्तक अंशों के आधार पर प्रश्न का उत्तर दें। बाहरी जानकारी न जोड़ें। उत्तर हिंदी में दें।

अंश:
%s

प्रश्न: %s`,

	lang.Marathi: `फक्त खालील पाठ्यपुस्तक उताऱ्यांच्या आधारे प्रश्नाचे उत्तर द्या. बाहेरील माहिती जोडू नका. उत्तर मराठीत द्या.

उतारे:
%s

प्रश्न: %s`,
}

// insufficientMessages 检索不到可用资料时的固定回复。
var insufficientMessages = map[lang.Code]string{
	lang.English: "I could not find enough information in the textbook to answer this question. Please try asking in different words.",
	lang.Hindi:   "पाठ्यपुस्तक में इस प्रश्न का उत्तर देने के लिए पर्याप्त जानकारी नहीं मिली। कृपया प्रश्न को दूसरे शब्दों में पूछें।",
	lang.Marathi: "या प्रश्नाचे उत्तर देण्यासाठी पाठ्यपुस्तकात पुरेशी माहिती मिळाली नाही. कृपया प्रश्न वेगळ्या शब्दांत विचारा.",
}

// apologyMessages 两条路径都失败时的固定致歉回复。
var apologyMessages = map[lang.Code]string{
	lang.English: "Sorry, I am unable to answer right now. Please try again in a little while.",
	lang.Hindi:   "क्षमा करें, अभी उत्तर देना संभव नहीं है। कृपया थोड़ी देर बाद पुनः प्रयास करें।",
	lang.Marathi: "क्षमस्व, सध्या उत्तर देणे शक्य नाही. कृपया थोड्या वेळाने पुन्हा प्रयत्न करा.",
}

// SystemPrompt 返回语言对应的系统提示词。
func SystemPrompt(code lang.Code) string {
	return systemPrompts[lang.Normalize(code)]
}

// QuestionPrompt 渲染在线模型的用户提示。
func QuestionPrompt(code lang.Code, question string) string {
	return fmt.Sprintf(questionTemplates[lang.Normalize(code)], question)
}

// GroundedPrompt 渲染离线模型的用户提示（含教材上下文）。
func GroundedPrompt(code lang.Code, contextText, question string) string {
	return fmt.Sprintf(groundedTemplates[lang.Normalize(code)], contextText, question)
}

// InsufficientMessage 返回“资料不足”固定话术。
func InsufficientMessage(code lang.Code) string {
	return insufficientMessages[lang.Normalize(code)]
}

// ApologyMessage 返回兜底致歉话术。
func ApologyMessage(code lang.Code) string {
	return apologyMessages[lang.Normalize(code)]
}
