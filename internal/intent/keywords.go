package intent

import "github.com/edubot/edubot/internal/locale"

// Keyword tables are matched as lower-cased substrings. English entries are
// always checked in addition to the selected language, since students mix
// languages freely.

var mcqKeywords = map[locale.Language][]string{
	locale.English: {"mcq", "quiz", "practice", "multiple choice", "test me"},
	locale.Sinhala: {"බහුවරණ", "අභ්‍යාස", "ප්‍රශ්නාවලිය", "ප්‍රශ්න පත්‍ර"},
	locale.Tamil:   {"பல்தேர்வு", "பயிற்சி", "வினாடி வினா", "வினா விடை"},
}

var stopKeywords = map[locale.Language][]string{
	locale.English: {"stop", "exit", "cancel", "quit", "end quiz", "no more"},
	locale.Sinhala: {"නවත්වන්න", "නවත්තන්න", "නතර කරන්න", "ඉවත් වන්න"},
	locale.Tamil:   {"நிறுத்து", "நிறுத்தவும்", "நிறுத்துங்கள்", "வெளியேறு", "போதும்"},
}

var explanationKeywords = map[locale.Language][]string{
	locale.English: {"explain", "i don't know", "i dont know", "don't understand", "dont understand", "what is the answer", "tell me the answer", "no idea"},
	locale.Sinhala: {"පැහැදිලි කරන්න", "පැහැදිලි කරලා", "මම දන්නේ නැහැ", "දන්නේ නෑ", "දන්නෑ", "තේරෙන්නේ නැහැ", "උත්තරය කියන්න", "පිළිතුර කුමක්ද"},
	locale.Tamil:   {"விளக்க", "எனக்குத் தெரியாது", "தெரியவில்லை", "புரியவில்லை", "பதில் என்ன", "பதிலைச் சொல்லுங்கள்"},
}

var quickActionKeywords = map[Kind]map[locale.Language][]string{
	KindLearn: {
		locale.English: {"learn a topic", "i want to learn", "teach me", "learn about"},
		locale.Sinhala: {"මාතෘකාවක් ඉගෙන", "ඉගෙන ගන්න ඕනේ", "ඉගෙන ගන්න ඕන", "උගන්වන්න"},
		locale.Tamil:   {"தலைப்பைக் கற்", "கற்க விரும்புகிறேன்", "கற்றுக்கொள்ள", "கற்றுத் தாருங்கள்"},
	},
	KindRandom: {
		locale.English: {"random question"},
		locale.Sinhala: {"අහම්බෙන්", "අහඹු"},
		locale.Tamil:   {"சீரற்ற", "ஏதாவது ஒரு கேள்வி"},
	},
	KindHelp: {
		locale.English: {"how can you help", "what can you do"},
		locale.Sinhala: {"උදව් කරන්න පුළුවන්", "මොනවද කරන්න පුළුවන්"},
		locale.Tamil:   {"உதவ முடியும்", "என்ன செய்ய முடியும்"},
	},
}
