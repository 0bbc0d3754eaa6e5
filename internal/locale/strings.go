package locale

var templates = map[Language]map[Key]string{
	English: {
		KeyMCQGoodbye:       "Okay, we've stopped the MCQ practice. Great effort! Ask me anything else about Political Science whenever you're ready.",
		KeyMCQFailed:        "Sorry, I couldn't prepare a question right now. Please try again in a moment.",
		KeyMCQPrompt:        "Please type A, B, C, or D:",
		KeyMCQQuestion:      "Question %d:",
		KeyMCQCorrect:       "✅ Correct! %s",
		KeyMCQIncorrect:     "❌ Incorrect. The correct answer is %s. %s",
		KeyMCQScore:         "Score: %d/%d",
		KeyMCQNext:          "Here is your next question.",
		KeyHelp:             "I can help you with A/L Political Science in English, Sinhala and Tamil.\n\n• Ask any question and I'll explain it simply.\n• Say \"I want to learn about <topic>\" for a guided lesson.\n• Say \"Let's practice MCQs\" for a quiz. Type \"stop\" to end it.\n• Say \"Give me a random question\" to test yourself.\n• If you're stuck on a question I asked, say \"explain\" or \"I don't know\".",
		KeyServiceError:     "Sorry, I'm having trouble answering right now. Please try again.",
		KeyServiceTimeout:   "Sorry, that took too long. Please try again.",
		KeyServiceBusy:      "Another message for this chat is still being processed. Please wait a moment.",
		KeyValidationFailed: "Message and language are required.",
	},
	Sinhala: {
		KeyMCQGoodbye:     "හරි, අපි MCQ අභ්‍යාසය නැවැත්තුවා. ඔබ හොඳින් උත්සාහ කළා! දේශපාලන විද්‍යාව ගැන ඕනෑම දෙයක් මගෙන් අහන්න.",
		KeyMCQFailed:      "සමාවන්න, මට දැන් ප්‍රශ්නයක් සකස් කරන්න බැරි වුණා. කරුණාකර ටික වේලාවකින් නැවත උත්සාහ කරන්න.",
		KeyMCQPrompt:      "කරුණාකර A, B, C, හෝ D ටයිප් කරන්න:",
		KeyMCQQuestion:    "ප්‍රශ්නය %d:",
		KeyMCQCorrect:     "✅ නිවැරදියි! %s",
		KeyMCQIncorrect:   "❌ වැරදියි. නිවැරදි පිළිතුර %s. %s",
		KeyMCQScore:       "ලකුණු: %d/%d",
		KeyMCQNext:        "මෙන්න ඔබේ ඊළඟ ප්‍රශ්නය.",
		KeyHelp:           "මට ඔබට A/L දේශපාලන විද්‍යාව ඉංග්‍රීසි, සිංහල සහ දෙමළ භාෂාවලින් උදව් කළ හැකියි.\n\n• ඕනෑම ප්‍රශ්නයක් අහන්න, මම සරලව පැහැදිලි කරන්නම්.\n• \"<මාතෘකාව> ගැන ඉගෙන ගන්න ඕනේ\" කියන්න.\n• ප්‍රශ්නාවලියක් සඳහා \"MCQ අභ්‍යාස කරමු\" කියන්න. නවත්වන්න \"stop\" ටයිප් කරන්න.\n• \"මට අහම්බෙන් ප්‍රශ්නයක් දෙන්න\" කියන්න.\n• මම ඇසූ ප්‍රශ්නයක් තේරෙන්නේ නැත්නම් \"පැහැදිලි කරන්න\" කියන්න.",
		KeyServiceError:   "සමාවන්න, මට දැන් පිළිතුරු දීමට අපහසුයි. කරුණාකර නැවත උත්සාහ කරන්න.",
		KeyServiceTimeout: "සමාවන්න, එය ඕනෑවට වඩා වේලාවක් ගත්තා. කරුණාකර නැවත උත්සාහ කරන්න.",
		KeyServiceBusy:    "මෙම සංවාදයේ තවත් පණිවිඩයක් සකසමින් පවතී. කරුණාකර මොහොතක් රැඳී සිටින්න.",
	},
	Tamil: {
		KeyMCQGoodbye:     "சரி, MCQ பயிற்சியை நிறுத்திவிட்டோம். நன்றாக முயற்சித்தீர்கள்! அரசியல் விஞ்ஞானம் பற்றி எதையும் என்னிடம் கேளுங்கள்.",
		KeyMCQFailed:      "மன்னிக்கவும், இப்போது ஒரு கேள்வியைத் தயாரிக்க முடியவில்லை. சிறிது நேரத்தில் மீண்டும் முயற்சிக்கவும்.",
		KeyMCQPrompt:      "தயவுசெய்து A, B, C, அல்லது D என தட்டச்சு செய்யவும்:",
		KeyMCQQuestion:    "கேள்வி %d:",
		KeyMCQCorrect:     "✅ சரி! %s",
		KeyMCQIncorrect:   "❌ தவறு. சரியான பதில் %s. %s",
		KeyMCQScore:       "மதிப்பெண்: %d/%d",
		KeyMCQNext:        "இதோ உங்கள் அடுத்த கேள்வி.",
		KeyHelp:           "A/L அரசியல் விஞ்ஞானத்தை ஆங்கிலம், சிங்களம் மற்றும் தமிழில் கற்க நான் உதவுவேன்.\n\n• எந்தக் கேள்வியையும் கேளுங்கள், எளிமையாக விளக்குவேன்.\n• \"<தலைப்பு> பற்றி கற்க விரும்புகிறேன்\" என்று சொல்லுங்கள்.\n• வினாடி வினாவுக்கு \"MCQ பயிற்சி செய்வோம்\" என்று சொல்லுங்கள். நிறுத்த \"stop\" என தட்டச்சு செய்யவும்.\n• \"எனக்கு ஒரு சீரற்ற கேள்வி கொடுங்கள்\" என்று சொல்லுங்கள்.\n• நான் கேட்ட கேள்வி புரியவில்லை என்றால் \"விளக்கவும்\" என்று சொல்லுங்கள்.",
		KeyServiceError:   "மன்னிக்கவும், இப்போது பதிலளிப்பதில் சிக்கல் உள்ளது. மீண்டும் முயற்சிக்கவும்.",
		KeyServiceTimeout: "மன்னிக்கவும், அதிக நேரம் எடுத்தது. மீண்டும் முயற்சிக்கவும்.",
		KeyServiceBusy:    "இந்த உரையாடலுக்கான மற்றொரு செய்தி இன்னும் செயலாக்கப்படுகிறது. சிறிது நேரம் காத்திருக்கவும்.",
	},
}
