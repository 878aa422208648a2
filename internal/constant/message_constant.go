package constant

import "strings"

// Reply templates per language. The dialog service formats them with
// fmt.Sprintf; verb ordering of the arguments is part of the template
// contract, so both languages keep the same argument order.
var messages = map[string]map[string]string{
	"en": {
		"start": "Hi! I am your writing coach. Send me text with a tool command (for example /feedback) or just chat about your writing. /help lists everything I can do.",
		"help": "Tool commands collect text until /done: /feedback, /style, /roast, /praise, /corrector, /editor, /methodique, /summary, /block, /develop, /character, /dialogue, /count, /devfeedback.\n" +
			"Other commands: /prompt for a writing prompt, /idea for a story idea, /cite for a craft quote, /stats for your word counts, /lang en|ru, /reset to start over.",
		"tool_entered":       "Send me the text for /%s. You can send several messages; finish with /done.",
		"accumulate_ack":     "Got it, %d characters so far. Send more or /done.",
		"too_short":          "That tool needs at least %d characters and you have %d. Keep going, then /done.",
		"nothing_to_finish":  "There is no text to work with yet. Send some first.",
		"discussion_hint":    "You can now ask follow-up questions about this text. /done closes the discussion.",
		"discussion_closed":  "Discussion closed. Back to normal chat.",
		"format_prompt":      "How should I summarize it?",
		"format_reprompt":    "Please pick one of the offered formats.",
		"document_received":  "Got your document, %d characters. Use a tool command (for example /summary or /editor) to work with it, or /reset to drop it.",
		"document_hint":      "I am holding your document. Use a tool command to work with it, or /reset to drop it.",
		"reset_done":         "Fresh start. Buffer, history and stats are cleared.",
		"generation_failed":  "Something went wrong while I was writing the answer. Send that again, please.",
		"cooldown_entered":   "I am having trouble generating responses right now. Give me half a minute and try again.",
		"cooldown_long":      "The assistant is unavailable at the moment. Please come back a little later.",
		"lang_set":           "Language switched to English.",
		"lang_usage":         "Usage: /lang en or /lang ru.",
		"stats":              "Your word counts:\ntoday: %d words (%d characters)\nlast 7 days: %d words\nlast 30 days: %d words\ntotal: %d words",
		"stats_unavailable":  "Word statistics are not available right now.",
		"devfeedback_thanks": "Thank you! Your feedback went straight to the developer.",
		"not_configured":     "This feature is not configured on this server.",
		"broadcast_confirm":  "Send this broadcast to all users?\n\n%s",
		"broadcast_sent":     "Broadcast queued for delivery.",
		"broadcast_cancel":   "Broadcast cancelled.",
		"unknown_command":    "I do not know that command. /help lists everything I can do.",
		"yes":                "Yes",
		"no":                 "No",
	},
	"ru": {
		"start": "Привет! Я твой литературный наставник. Отправь текст с командой инструмента (например /feedback) или просто поговорим о твоём письме. /help покажет всё, что я умею.",
		"help": "Команды-инструменты собирают текст до /done: /feedback, /style, /roast, /praise, /corrector, /editor, /methodique, /summary, /block, /develop, /character, /dialogue, /count, /devfeedback.\n" +
			"Остальное: /prompt — писательское задание, /idea — идея истории, /cite — цитата о мастерстве, /stats — статистика слов, /lang en|ru, /reset — начать заново.",
		"tool_entered":       "Пришли текст для /%s. Можно несколькими сообщениями; заверши командой /done.",
		"accumulate_ack":     "Принято, уже %d символов. Продолжай или отправь /done.",
		"too_short":          "Этому инструменту нужно минимум %d символов, а сейчас %d. Добавь ещё и отправь /done.",
		"nothing_to_finish":  "Пока нет текста для работы. Сначала пришли его.",
		"discussion_hint":    "Теперь можно задавать вопросы об этом тексте. /done завершит обсуждение.",
		"discussion_closed":  "Обсуждение закрыто. Возвращаемся к обычному разговору.",
		"format_prompt":      "Как подать пересказ?",
		"format_reprompt":    "Выбери, пожалуйста, один из предложенных форматов.",
		"document_received":  "Документ получен, %d символов. Используй команду инструмента (например /summary или /editor) или /reset, чтобы убрать его.",
		"document_hint":      "Документ у меня. Используй команду инструмента или /reset, чтобы убрать его.",
		"reset_done":         "Начинаем заново. Буфер, история и статистика очищены.",
		"generation_failed":  "Что-то пошло не так, пока я писал ответ. Отправь ещё раз, пожалуйста.",
		"cooldown_entered":   "У меня сейчас не получается отвечать. Дай мне полминуты и попробуй снова.",
		"cooldown_long":      "Помощник сейчас недоступен. Загляни немного позже.",
		"lang_set":           "Переключаюсь на русский.",
		"lang_usage":         "Использование: /lang en или /lang ru.",
		"stats":              "Твоя статистика:\nсегодня: %d слов (%d символов)\nза 7 дней: %d слов\nза 30 дней: %d слов\nвсего: %d слов",
		"stats_unavailable":  "Статистика слов сейчас недоступна.",
		"devfeedback_thanks": "Спасибо! Отзыв ушёл прямо разработчику.",
		"not_configured":     "Эта функция не настроена на этом сервере.",
		"broadcast_confirm":  "Отправить это сообщение всем пользователям?\n\n%s",
		"broadcast_sent":     "Рассылка поставлена в очередь.",
		"broadcast_cancel":   "Рассылка отменена.",
		"unknown_command":    "Такой команды я не знаю. /help покажет всё, что я умею.",
		"yes":                "Да",
		"no":                 "Нет",
	},
}

// Msg returns the template for a key in the given language, falling back
// to English for unknown languages or missing keys.
func Msg(language, key string) string {
	lang := strings.ToLower(language)
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages["en"][key]
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
