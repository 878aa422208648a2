package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"writer-coach-be/internal/constant"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/pkg/llm"
	"writer-coach-be/pkg/prompt"
	"writer-coach-be/pkg/retrieval"
	"writer-coach-be/pkg/store"
	"writer-coach-be/pkg/tools"
)

// AssistantConfig tunes the respond pipeline.
type AssistantConfig struct {
	HistoryWindow       int // messages kept and sent to the model
	SummaryEvery        int // turns accrued before the rolling summary refreshes
	SummaryMinHistory   int // minimum history length before summarizing at all
	DiscussContextChars int // how much of the kept text goes into discussion prompts
}

func (c AssistantConfig) withDefaults() AssistantConfig {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = 10
	}
	if c.SummaryEvery <= 0 {
		c.SummaryEvery = 20
	}
	if c.SummaryMinHistory <= 0 {
		c.SummaryMinHistory = 10
	}
	if c.DiscussContextChars <= 0 {
		c.DiscussContextChars = 500
	}
	return c
}

type IAssistantService interface {
	// Chat answers a freeform message, grounded across every collection.
	Chat(ctx context.Context, ses *store.Session, text string) (string, error)

	// RunTool executes a finalized tool over the accumulated text.
	RunTool(ctx context.Context, ses *store.Session, tool tools.Descriptor, text, instruction string) (string, error)

	// Discuss answers a follow-up question about the text kept in the session.
	Discuss(ctx context.Context, ses *store.Session, tool tools.Descriptor, question string) (string, error)

	WritingPrompt(ctx context.Context, language string) string
	StoryIdea(language string) string
	Citation(language string) string
}

type assistantService struct {
	provider llm.LLMProvider
	engine   *retrieval.Engine
	logger   logger.ILogger
	cfg      AssistantConfig
}

func NewAssistantService(
	provider llm.LLMProvider,
	engine *retrieval.Engine,
	log logger.ILogger,
	cfg AssistantConfig,
) IAssistantService {
	return &assistantService{
		provider: provider,
		engine:   engine,
		logger:   log,
		cfg:      cfg.withDefaults(),
	}
}

func (s *assistantService) Chat(ctx context.Context, ses *store.Session, text string) (string, error) {
	grounding := s.engine.ContextFor(ctx, text, "", false)

	messages := prompt.Build(prompt.Input{
		Language: ses.Language,
		Context:  grounding,
		Summary:  ses.Summary,
		History:  s.window(ses),
		UserText: text,
	})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		return "", asGenerationError(err)
	}

	ses.PushHistory(text, reply, s.cfg.HistoryWindow)
	s.maybeSummarize(ctx, ses)
	return reply, nil
}

// RunTool is a standalone generation: the accumulated text is the whole
// conversation, so chat history stays out of the prompt.
func (s *assistantService) RunTool(ctx context.Context, ses *store.Session, tool tools.Descriptor, text, instruction string) (string, error) {
	grounding := s.engine.ContextFor(ctx, text, tool.Category, tool.Diversity)

	messages := prompt.Build(prompt.Input{
		Language:    ses.Language,
		Instruction: instruction,
		Context:     grounding,
		UserText:    text,
		DetailHint:  prompt.DetailHintFor(len([]rune(text))),
	})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		return "", asGenerationError(err)
	}
	return reply, nil
}

func (s *assistantService) Discuss(ctx context.Context, ses *store.Session, tool tools.Descriptor, question string) (string, error) {
	kept := clip(ses.Accumulated, s.cfg.DiscussContextChars)
	instruction := fmt.Sprintf(
		"You recently analyzed this text for the user (tool: %s):\n«%s»\nAnswer the user's follow-up question about it.",
		tool.ID, kept,
	)

	messages := prompt.Build(prompt.Input{
		Language:    ses.Language,
		Instruction: instruction,
		Summary:     ses.Summary,
		History:     s.window(ses),
		UserText:    question,
	})

	reply, err := s.provider.Chat(ctx, messages)
	if err != nil {
		return "", asGenerationError(err)
	}

	ses.PushHistory(question, reply, s.cfg.HistoryWindow)
	s.maybeSummarize(ctx, ses)
	return reply, nil
}

func (s *assistantService) WritingPrompt(ctx context.Context, language string) string {
	ask := "Invent one short, concrete writing prompt for a fiction writer. One or two sentences, no preamble."
	if strings.EqualFold(language, "ru") {
		ask = "Придумай одно короткое конкретное писательское задание для прозаика. Одно-два предложения, без вступления."
	}

	generated, err := s.provider.Generate(ctx, ask, llm.WithTemperature(1.0))
	if err == nil && strings.TrimSpace(generated) != "" {
		return strings.TrimSpace(generated)
	}
	if err != nil {
		s.logger.Warn("assistant", "prompt generation failed, using static prompt", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return pickFor(constant.WritingPrompts, language)
}

func (s *assistantService) StoryIdea(language string) string {
	genre := pickFor(constant.IdeaGenres, language)
	setting := pickFor(constant.IdeaSettings, language)
	conflict := pickFor(constant.IdeaConflicts, language)

	if strings.EqualFold(language, "ru") {
		return fmt.Sprintf("Попробуй: %s, %s, где %s.", genre, setting, conflict)
	}
	return fmt.Sprintf("Try this: %s, set %s, where %s.", genre, setting, conflict)
}

func (s *assistantService) Citation(language string) string {
	lang := "en"
	if strings.EqualFold(language, "ru") {
		lang = "ru"
	}
	list := constant.Citations[lang]
	c := list[rand.Intn(len(list))]
	return fmt.Sprintf("«%s»\n%s", c.Text, c.Author)
}

func (s *assistantService) window(ses *store.Session) []llm.Message {
	h := ses.History
	if len(h) > s.cfg.HistoryWindow {
		h = h[len(h)-s.cfg.HistoryWindow:]
	}
	return h
}

// maybeSummarize refreshes the rolling summary once enough new turns have
// accrued. A failed summary is logged and retried on a later exchange.
func (s *assistantService) maybeSummarize(ctx context.Context, ses *store.Session) {
	if ses.TurnsSinceSummary < s.cfg.SummaryEvery || len(ses.History) < s.cfg.SummaryMinHistory {
		return
	}

	var b strings.Builder
	if ses.Summary != "" {
		b.WriteString("Previous summary: ")
		b.WriteString(ses.Summary)
		b.WriteString("\n\n")
	}
	b.WriteString("Conversation:\n")
	for _, m := range ses.History {
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nCompress this conversation into a short summary that preserves the writer's project, goals and decisions. A few sentences at most.")

	summary, err := s.provider.Generate(ctx, b.String(), llm.WithTemperature(0.3))
	if err != nil {
		s.logger.Warn("assistant", "rolling summary failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": ses.UserID,
		})
		return
	}

	ses.Summary = strings.TrimSpace(summary)
	ses.TurnsSinceSummary = 0
}

// asGenerationError guarantees the dialog layer sees backend trouble as a
// GenerationError even when a provider returns something rawer.
func asGenerationError(err error) error {
	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &llm.GenerationError{Provider: "llm", Err: err}
}

func clip(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + "..."
}

func pickFor(table map[string][]string, language string) string {
	lang := "en"
	if strings.EqualFold(language, "ru") {
		lang = "ru"
	}
	list := table[lang]
	return list[rand.Intn(len(list))]
}
