package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/llm"
	"writer-coach-be/pkg/retrieval"
	"writer-coach-be/pkg/store"
	"writer-coach-be/pkg/tools"
)

type fakeProvider struct {
	reply        string
	err          error
	generated    string
	generateErr  error
	chatCalls    [][]llm.Message
	generateArgs []string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.chatCalls = append(f.chatCalls, history)
	return f.reply, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.generateArgs = append(f.generateArgs, prompt)
	return f.generated, f.generateErr
}

func (f *fakeProvider) lastChat(t *testing.T) []llm.Message {
	t.Helper()
	if len(f.chatCalls) == 0 {
		t.Fatal("expected a chat call")
	}
	return f.chatCalls[len(f.chatCalls)-1]
}

func newAssistantFixture(cfg AssistantConfig) (*assistantService, *fakeProvider) {
	provider := &fakeProvider{reply: "model reply", generated: "generated"}
	engine := retrieval.NewEngine(corpus.NewStore(nil), nil, nil, stubLogger{}, retrieval.Config{})
	svc := NewAssistantService(provider, engine, stubLogger{}, cfg).(*assistantService)
	return svc, provider
}

func TestChatPushesHistory(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{})
	ses := store.NewSession("u1", "en")

	reply, err := svc.Chat(context.Background(), ses, "how do I open a chapter?")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply != "model reply" {
		t.Errorf("got %q", reply)
	}

	if len(ses.History) != 2 {
		t.Fatalf("history: got %d messages, want 2", len(ses.History))
	}
	if ses.History[0].Role != llm.RoleUser || ses.History[1].Role != llm.RoleAssistant {
		t.Errorf("history roles wrong: %+v", ses.History)
	}

	messages := provider.lastChat(t)
	if messages[len(messages)-1].Content != "how do I open a chapter?" {
		t.Errorf("user text must be the last message")
	}
}

func TestChatWrapsProviderError(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{})
	provider.err = errors.New("raw transport error")
	ses := store.NewSession("u1", "en")

	_, err := svc.Chat(context.Background(), ses, "hello")
	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected a GenerationError, got %v", err)
	}
	if len(ses.History) != 0 {
		t.Errorf("failed exchanges must not enter the history")
	}
}

func TestRunToolIsStandalone(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{})
	ses := store.NewSession("u1", "en")
	ses.PushHistory("earlier q", "earlier a", 10)

	registry := tools.NewRegistry()
	tool, _ := registry.Get(tools.Feedback)

	_, err := svc.RunTool(context.Background(), ses, tool, "the draft", tool.Instruction)
	if err != nil {
		t.Fatalf("RunTool: %v", err)
	}

	messages := provider.lastChat(t)
	for _, m := range messages {
		if m.Content == "earlier q" || m.Content == "earlier a" {
			t.Errorf("tool runs must not carry chat history")
		}
	}

	var task string
	for _, m := range messages {
		if strings.HasPrefix(m.Content, "Task: ") {
			task = m.Content
		}
	}
	if !strings.Contains(task, tool.Instruction) {
		t.Errorf("instruction missing from the task section: %q", task)
	}
	if !strings.Contains(task, "brief") {
		t.Errorf("short input should carry the brief detail hint: %q", task)
	}
	if len(ses.History) != 2 {
		t.Errorf("tool runs must not push history, got %d messages", len(ses.History))
	}
}

func TestDiscussClipsKeptText(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{DiscussContextChars: 10})
	ses := store.NewSession("u1", "en")
	ses.State = store.StateDiscussing
	ses.Accumulated = "0123456789ABCDEF"

	registry := tools.NewRegistry()
	tool, _ := registry.Get(tools.Style)

	_, err := svc.Discuss(context.Background(), ses, tool, "what about rhythm?")
	if err != nil {
		t.Fatalf("Discuss: %v", err)
	}

	messages := provider.lastChat(t)
	var instruction string
	for _, m := range messages {
		if strings.HasPrefix(m.Content, "Task: ") {
			instruction = m.Content
		}
	}
	if !strings.Contains(instruction, "0123456789...") {
		t.Errorf("kept text should be clipped to the budget, got %q", instruction)
	}
	if strings.Contains(instruction, "ABCDEF") {
		t.Errorf("text past the budget leaked into the prompt")
	}
	if !strings.Contains(instruction, tools.Style) {
		t.Errorf("the originating tool should be named, got %q", instruction)
	}
	if len(ses.History) != 2 {
		t.Errorf("discussion exchanges belong in the history")
	}
}

func TestRollingSummary(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{
		HistoryWindow:     10,
		SummaryEvery:      20,
		SummaryMinHistory: 10,
	})
	provider.generated = "the writer is drafting a heist novella"
	ses := store.NewSession("u1", "en")

	// Nine exchanges: 18 turns, below the threshold.
	for i := 0; i < 9; i++ {
		if _, err := svc.Chat(context.Background(), ses, "turn"); err != nil {
			t.Fatal(err)
		}
	}
	if ses.Summary != "" {
		t.Fatalf("summary refreshed too early: %q", ses.Summary)
	}

	// The tenth exchange crosses 20 accrued turns.
	if _, err := svc.Chat(context.Background(), ses, "turn"); err != nil {
		t.Fatal(err)
	}
	if ses.Summary != "the writer is drafting a heist novella" {
		t.Errorf("summary: got %q", ses.Summary)
	}
	if ses.TurnsSinceSummary != 0 {
		t.Errorf("turn counter should reset after a summary, got %d", ses.TurnsSinceSummary)
	}
	if len(provider.generateArgs) != 1 {
		t.Fatalf("expected exactly one summary generation, got %d", len(provider.generateArgs))
	}
	if !strings.Contains(provider.generateArgs[0], "Compress this conversation") {
		t.Errorf("unexpected summary prompt: %q", provider.generateArgs[0])
	}
}

func TestSummaryFailureIsRetriedLater(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{})
	provider.generateErr = errors.New("backend down")
	ses := store.NewSession("u1", "en")

	for i := 0; i < 10; i++ {
		if _, err := svc.Chat(context.Background(), ses, "turn"); err != nil {
			t.Fatal(err)
		}
	}
	if ses.Summary != "" {
		t.Fatalf("failed summary must leave the old summary in place")
	}
	if ses.TurnsSinceSummary == 0 {
		t.Errorf("a failed summary must not reset the turn counter")
	}
}

func TestWritingPromptFallsBackToStatic(t *testing.T) {
	svc, provider := newAssistantFixture(AssistantConfig{})
	provider.generateErr = errors.New("backend down")

	got := svc.WritingPrompt(context.Background(), "en")
	if got == "" {
		t.Fatal("expected a static fallback prompt")
	}

	provider.generateErr = nil
	provider.generated = "  write a scene in total darkness  "
	if got := svc.WritingPrompt(context.Background(), "en"); got != "write a scene in total darkness" {
		t.Errorf("generated prompts should be trimmed, got %q", got)
	}
}

func TestStoryIdeaAndCitationAreLocalized(t *testing.T) {
	svc, _ := newAssistantFixture(AssistantConfig{})

	if got := svc.StoryIdea("en"); !strings.HasPrefix(got, "Try this: ") {
		t.Errorf("en idea: got %q", got)
	}
	if got := svc.StoryIdea("ru"); !strings.HasPrefix(got, "Попробуй: ") {
		t.Errorf("ru idea: got %q", got)
	}
	if got := svc.Citation("en"); !strings.HasPrefix(got, "«") {
		t.Errorf("citation format: got %q", got)
	}
}
