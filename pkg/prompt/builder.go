package prompt

import (
	"strings"

	"writer-coach-be/pkg/llm"
)

const systemPromptEN = `You are an experienced writing coach and editor. You help writers improve their prose, structure and craft. Be concrete: quote the text you discuss, explain why something works or fails, and always leave the writer with something actionable. Answer in English.`

const systemPromptRU = `Ты опытный литературный наставник и редактор. Ты помогаешь авторам улучшать прозу, структуру и мастерство. Будь конкретен: цитируй обсуждаемый текст, объясняй, почему что-то работает или нет, и всегда оставляй автору практический совет. Отвечай по-русски.`

// Input is everything the builder needs to assemble one model call.
type Input struct {
	Language    string
	Instruction string // tool task, empty for freeform chat
	Context     string // retrieval grounding block, may be empty
	Summary     string // rolling conversation summary, may be empty
	History     []llm.Message
	UserText    string
	DetailHint  string
}

// Build assembles the message list for the model: system persona, then the
// optional sections as further system messages, then the history window,
// then the user input. Empty sections are skipped.
func Build(in Input) []llm.Message {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: systemPrompt(in.Language)},
	}

	if in.Instruction != "" {
		content := "Task: " + in.Instruction
		if in.DetailHint != "" {
			content += "\n" + in.DetailHint
		}
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: content})
	}

	if in.Context != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: "Use these excerpts when they are relevant, and credit the authors you draw on:\n\n" + in.Context,
		})
	}

	if in.Summary != "" {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: "Conversation so far (summary): " + in.Summary,
		})
	}

	messages = append(messages, in.History...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: in.UserText})

	return messages
}

func systemPrompt(language string) string {
	if strings.EqualFold(language, "ru") {
		return systemPromptRU
	}
	return systemPromptEN
}

// DetailHintFor scales the expected response depth with the size of the
// submitted text.
func DetailHintFor(inputLen int) string {
	switch {
	case inputLen < 2000:
		return "The submission is short: keep the response brief and focused."
	case inputLen < 7000:
		return "Give a standard-depth response."
	case inputLen < 30000:
		return "The submission is long: respond in detail, section by section."
	default:
		return "The submission is very long: cover it thoroughly, organized by section, without skipping parts."
	}
}
