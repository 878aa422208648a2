package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"writer-coach-be/internal/constant"
	"writer-coach-be/internal/dto"
	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/internal/repository/memory"
	"writer-coach-be/pkg/llm"
	"writer-coach-be/pkg/store"
	"writer-coach-be/pkg/tools"
)

// ValidationError reports input that cannot be finalized yet.
type ValidationError struct {
	Min int
	Got int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input too short: need %d characters, have %d", e.Min, e.Got)
}

// DialogConfig tunes the failure cooldown and session defaults.
type DialogConfig struct {
	DefaultLanguage string
	MaxFailures     int           // consecutive generation failures before cooldown
	ShortCooldown   time.Duration // first-tier cooldown
	LongCooldown    time.Duration // applied when failures resume shortly after a cooldown
	OutageWindow    time.Duration // how soon after a cooldown a new streak counts as an outage
}

func (c DialogConfig) withDefaults() DialogConfig {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}
	if c.MaxFailures <= 0 {
		c.MaxFailures = 3
	}
	if c.ShortCooldown <= 0 {
		c.ShortCooldown = 30 * time.Second
	}
	if c.LongCooldown <= 0 {
		c.LongCooldown = 5 * time.Minute
	}
	if c.OutageWindow <= 0 {
		c.OutageWindow = 10 * time.Minute
	}
	return c
}

type IDialogService interface {
	// HandleMessage applies one inbound message to the user's dialog state
	// and returns what the gateway should deliver.
	HandleMessage(ctx context.Context, req *dto.HandleMessageRequest) (*dto.HandleMessageResponse, error)

	// StageBroadcast puts the operator's session into broadcast
	// confirmation; the confirmation itself arrives as a normal message.
	StageBroadcast(ctx context.Context, userID, text string) (*dto.HandleMessageResponse, error)
}

type dialogService struct {
	sessions  *memory.SessionRepository
	prefs     contract.UserPrefRepository
	registry  *tools.Registry
	assistant IAssistantService
	stats     IStatsService
	notifier  INotifierService
	logger    logger.ILogger
	cfg       DialogConfig
	now       func() time.Time
}

func NewDialogService(
	sessions *memory.SessionRepository,
	prefs contract.UserPrefRepository,
	registry *tools.Registry,
	assistant IAssistantService,
	stats IStatsService,
	notifier INotifierService,
	log logger.ILogger,
	cfg DialogConfig,
) IDialogService {
	return &dialogService{
		sessions:  sessions,
		prefs:     prefs,
		registry:  registry,
		assistant: assistant,
		stats:     stats,
		notifier:  notifier,
		logger:    log,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

func (s *dialogService) HandleMessage(ctx context.Context, req *dto.HandleMessageRequest) (*dto.HandleMessageResponse, error) {
	lock := s.sessions.UserLock(req.UserId)
	lock.Lock()
	defer lock.Unlock()

	ses := s.session(ctx, req.UserId)
	defer s.sessions.Save(ses)

	if req.IsDocument {
		return s.handleDocument(ses, req.Text), nil
	}
	if req.Command != "" {
		return s.handleCommand(ctx, ses, strings.ToLower(req.Command), strings.TrimSpace(req.Args)), nil
	}
	return s.handleText(ctx, ses, req.Text), nil
}

func (s *dialogService) StageBroadcast(ctx context.Context, userID, text string) (*dto.HandleMessageResponse, error) {
	lock := s.sessions.UserLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if !s.notifier.Enabled() {
		ses := s.session(ctx, userID)
		return s.reply(ses, "not_configured"), nil
	}

	ses := s.session(ctx, userID)
	defer s.sessions.Save(ses)

	ses.State = store.StateConfirmBroadcast
	ses.ActiveTool = ""
	ses.PendingBroadcast = text

	return &dto.HandleMessageResponse{
		Reply:   fmt.Sprintf(constant.Msg(ses.Language, "broadcast_confirm"), text),
		Options: []string{constant.Msg(ses.Language, "yes"), constant.Msg(ses.Language, "no")},
	}, nil
}

// session returns the live session for a user, recreating it (with the
// persisted language) when the cache evicted it.
func (s *dialogService) session(ctx context.Context, userID string) *store.Session {
	if ses, ok := s.sessions.Get(userID); ok {
		return ses
	}

	language := s.cfg.DefaultLanguage
	if s.prefs != nil {
		pref, err := s.prefs.Find(ctx, userID)
		if err != nil {
			s.logger.Warn("dialog", "failed to load user preferences", map[string]interface{}{
				"error":   err.Error(),
				"user_id": userID,
			})
		} else if pref != nil && pref.Language != "" {
			language = pref.Language
		}
	}

	ses := store.NewSession(userID, language)
	s.sessions.Save(ses)
	return ses
}

// --- commands ---

func (s *dialogService) handleCommand(ctx context.Context, ses *store.Session, command, args string) *dto.HandleMessageResponse {
	switch command {
	case constant.CmdStart:
		return s.reply(ses, "start")
	case constant.CmdHelp:
		return s.reply(ses, "help")
	case constant.CmdDone:
		return s.handleDone(ctx, ses)
	case constant.CmdReset:
		return s.handleReset(ctx, ses)
	case constant.CmdLang:
		return s.handleLang(ctx, ses, args)
	case constant.CmdStats:
		return s.handleStats(ctx, ses)
	case constant.CmdPrompt:
		return &dto.HandleMessageResponse{Reply: s.assistant.WritingPrompt(ctx, ses.Language)}
	case constant.CmdIdea:
		return &dto.HandleMessageResponse{Reply: s.assistant.StoryIdea(ses.Language)}
	case constant.CmdCite:
		return &dto.HandleMessageResponse{Reply: s.assistant.Citation(ses.Language)}
	}

	if tool, ok := s.registry.Get(command); ok {
		return s.enterTool(ctx, ses, tool, args)
	}

	return s.reply(ses, "unknown_command")
}

// enterTool starts (or restarts) accumulation for a tool. A tool switch
// discards the previous buffer; inline arguments seed the new one, and
// inline input that already satisfies the tool runs without waiting for
// /done.
func (s *dialogService) enterTool(ctx context.Context, ses *store.Session, tool tools.Descriptor, args string) *dto.HandleMessageResponse {
	if ses.State == store.StateDocumentReady && ses.Accumulated != "" {
		// The document is the input; the command finalizes immediately.
		ses.ActiveTool = tool.ID
		ses.State = store.StateAccumulating
		return s.finalize(ctx, ses, tool)
	}

	ses.State = store.StateAccumulating
	ses.ActiveTool = tool.ID
	ses.Accumulated = ""
	ses.PendingBroadcast = ""
	if args != "" {
		ses.Append(args)
		if utf8.RuneCountInString(ses.Accumulated) >= tool.MinInput {
			return s.finalize(ctx, ses, tool)
		}
	}

	resp := &dto.HandleMessageResponse{
		Reply: fmt.Sprintf(constant.Msg(ses.Language, "tool_entered"), tool.ID),
	}
	if args != "" {
		resp.Reply += "\n" + fmt.Sprintf(constant.Msg(ses.Language, "accumulate_ack"), utf8.RuneCountInString(ses.Accumulated))
	}
	return resp
}

func (s *dialogService) handleReset(ctx context.Context, ses *store.Session) *dto.HandleMessageResponse {
	ses.ResetDialog()
	ses.History = nil
	ses.Summary = ""
	ses.TurnsSinceSummary = 0

	if s.stats != nil {
		if err := s.stats.Reset(ctx, ses.UserID); err != nil {
			s.logger.Warn("dialog", "failed to reset word stats", map[string]interface{}{
				"error":   err.Error(),
				"user_id": ses.UserID,
			})
		}
	}
	return s.reply(ses, "reset_done")
}

func (s *dialogService) handleLang(ctx context.Context, ses *store.Session, args string) *dto.HandleMessageResponse {
	lang := strings.ToLower(strings.TrimSpace(args))
	if lang != "en" && lang != "ru" {
		return s.reply(ses, "lang_usage")
	}

	ses.Language = lang
	if s.prefs != nil {
		err := s.prefs.Upsert(ctx, &entity.UserPref{UserId: ses.UserID, Language: lang})
		if err != nil {
			s.logger.Warn("dialog", "failed to persist language", map[string]interface{}{
				"error":   err.Error(),
				"user_id": ses.UserID,
			})
		}
	}
	return s.reply(ses, "lang_set")
}

func (s *dialogService) handleStats(ctx context.Context, ses *store.Session) *dto.HandleMessageResponse {
	if s.stats == nil {
		return s.reply(ses, "stats_unavailable")
	}
	stats, err := s.stats.Stats(ctx, ses.UserID)
	if err != nil {
		s.logger.Warn("dialog", "failed to read word stats", map[string]interface{}{
			"error":   err.Error(),
			"user_id": ses.UserID,
		})
		return s.reply(ses, "stats_unavailable")
	}
	return &dto.HandleMessageResponse{
		Reply: fmt.Sprintf(constant.Msg(ses.Language, "stats"),
			stats.TodayWords, stats.TodayChars, stats.WeekWords, stats.MonthWords, stats.TotalWords),
	}
}

// --- finalize ---

func (s *dialogService) handleDone(ctx context.Context, ses *store.Session) *dto.HandleMessageResponse {
	switch ses.State {
	case store.StateDiscussing:
		ses.ResetDialog()
		return s.reply(ses, "discussion_closed")

	case store.StateAccumulating:
		tool, ok := s.registry.Get(ses.ActiveTool)
		if !ok {
			ses.ResetDialog()
			return s.reply(ses, "nothing_to_finish")
		}
		return s.finalize(ctx, ses, tool)

	case store.StateFormatChoice:
		return s.reply(ses, "format_reprompt")

	case store.StateDocumentReady:
		return s.reply(ses, "document_hint")

	default:
		return s.reply(ses, "nothing_to_finish")
	}
}

func (s *dialogService) finalize(ctx context.Context, ses *store.Session, tool tools.Descriptor) *dto.HandleMessageResponse {
	if strings.TrimSpace(ses.Accumulated) == "" {
		return s.reply(ses, "nothing_to_finish")
	}

	// Format-choice tools only need something to summarize; the length
	// gate applies to the remaining tools.
	if tool.FormatChoice {
		ses.State = store.StateFormatChoice
		return &dto.HandleMessageResponse{
			Reply:   constant.Msg(ses.Language, "format_prompt"),
			Options: constant.FormatLabels[langOrEnglish(ses.Language)],
		}
	}

	if verr := validateLength(ses.Accumulated, tool.MinInput); verr != nil {
		// The buffer and state survive a failed validation so the user
		// can keep adding text.
		return &dto.HandleMessageResponse{
			Reply: fmt.Sprintf(constant.Msg(ses.Language, "too_short"), verr.Min, verr.Got),
		}
	}

	switch {
	case tool.ID == tools.Count:
		return s.finalizeCount(ses)
	case tool.ID == tools.DevFeedback:
		return s.finalizeDevFeedback(ctx, ses)
	default:
		return s.runTool(ctx, ses, tool, tool.Instruction)
	}
}

func (s *dialogService) finalizeCount(ses *store.Session) *dto.HandleMessageResponse {
	words := len(strings.Fields(ses.Accumulated))
	chars := utf8.RuneCountInString(ses.Accumulated)
	ses.ResetDialog()
	if ses.Language == "ru" {
		return &dto.HandleMessageResponse{Reply: fmt.Sprintf("В этом тексте %d слов и %d символов.", words, chars)}
	}
	return &dto.HandleMessageResponse{Reply: fmt.Sprintf("That text has %d words and %d characters.", words, chars)}
}

func (s *dialogService) finalizeDevFeedback(ctx context.Context, ses *store.Session) *dto.HandleMessageResponse {
	if !s.notifier.Enabled() {
		ses.ResetDialog()
		return s.reply(ses, "not_configured")
	}
	if err := s.notifier.DevFeedback(ctx, ses.UserID, ses.Accumulated); err != nil {
		ses.ResetDialog()
		return s.reply(ses, "generation_failed")
	}
	ses.ResetDialog()
	return s.reply(ses, "devfeedback_thanks")
}

// runTool executes the generation and applies the post-finalize transition:
// discussable tools keep the buffer and move to discussion, the rest
// return to plain chat.
func (s *dialogService) runTool(ctx context.Context, ses *store.Session, tool tools.Descriptor, instruction string) *dto.HandleMessageResponse {
	reply, err := s.assistant.RunTool(ctx, ses, tool, ses.Accumulated, instruction)
	if err != nil {
		return s.recordFailure(ses, err)
	}
	s.clearFailures(ses)

	if tool.Discussable {
		ses.State = store.StateDiscussing
		ses.ActiveTool = tool.ID
		return &dto.HandleMessageResponse{
			Reply: reply + "\n\n" + constant.Msg(ses.Language, "discussion_hint"),
		}
	}

	ses.ResetDialog()
	return &dto.HandleMessageResponse{Reply: reply}
}

// --- plain text ---

func (s *dialogService) handleText(ctx context.Context, ses *store.Session, text string) *dto.HandleMessageResponse {
	if ses.InCooldown(s.now()) {
		return &dto.HandleMessageResponse{Dropped: true}
	}

	switch ses.State {
	case store.StateAccumulating:
		ses.Append(text)
		if s.stats != nil {
			s.stats.AddText(ctx, ses.UserID, text)
		}
		return &dto.HandleMessageResponse{
			Reply: fmt.Sprintf(constant.Msg(ses.Language, "accumulate_ack"), utf8.RuneCountInString(ses.Accumulated)),
		}

	case store.StateFormatChoice:
		return s.handleFormatChoice(ctx, ses, text)

	case store.StateDiscussing:
		return s.handleDiscussion(ctx, ses, text)

	case store.StateDocumentReady:
		return s.reply(ses, "document_hint")

	case store.StateConfirmBroadcast:
		return s.handleBroadcastConfirm(ctx, ses, text)

	default:
		return s.handleChat(ctx, ses, text)
	}
}

func (s *dialogService) handleChat(ctx context.Context, ses *store.Session, text string) *dto.HandleMessageResponse {
	if s.stats != nil {
		s.stats.AddText(ctx, ses.UserID, text)
	}

	reply, err := s.assistant.Chat(ctx, ses, text)
	if err != nil {
		return s.recordFailure(ses, err)
	}
	s.clearFailures(ses)
	return &dto.HandleMessageResponse{Reply: reply}
}

func (s *dialogService) handleDiscussion(ctx context.Context, ses *store.Session, text string) *dto.HandleMessageResponse {
	tool, ok := s.registry.Get(ses.ActiveTool)
	if !ok {
		ses.ResetDialog()
		return s.handleChat(ctx, ses, text)
	}

	reply, err := s.assistant.Discuss(ctx, ses, tool, text)
	if err != nil {
		return s.recordFailure(ses, err)
	}
	s.clearFailures(ses)
	return &dto.HandleMessageResponse{Reply: reply}
}

// handleFormatChoice only accepts the offered labels; anything else
// re-prompts without touching the buffer.
func (s *dialogService) handleFormatChoice(ctx context.Context, ses *store.Session, text string) *dto.HandleMessageResponse {
	format, ok := constant.FormatForLabel(text)
	if !ok {
		return &dto.HandleMessageResponse{
			Reply:   constant.Msg(ses.Language, "format_reprompt"),
			Options: constant.FormatLabels[langOrEnglish(ses.Language)],
		}
	}

	tool, exists := s.registry.Get(tools.Summary)
	if !exists {
		ses.ResetDialog()
		return s.reply(ses, "nothing_to_finish")
	}
	return s.runTool(ctx, ses, tool, constant.FormatInstruction(format))
}

func (s *dialogService) handleBroadcastConfirm(ctx context.Context, ses *store.Session, text string) *dto.HandleMessageResponse {
	answer := strings.ToLower(strings.TrimSpace(text))
	confirmed := answer == "yes" || answer == "y" || answer == "да"

	pending := ses.PendingBroadcast
	ses.ResetDialog()

	if !confirmed {
		return s.reply(ses, "broadcast_cancel")
	}
	if err := s.notifier.Broadcast(ctx, pending); err != nil {
		return s.reply(ses, "generation_failed")
	}
	return s.reply(ses, "broadcast_sent")
}

// --- documents ---

// handleDocument loads extracted document text as the session's working
// text without accumulation. The next tool command operates on it directly.
func (s *dialogService) handleDocument(ses *store.Session, text string) *dto.HandleMessageResponse {
	if ses.InCooldown(s.now()) {
		return &dto.HandleMessageResponse{Dropped: true}
	}

	ses.State = store.StateDocumentReady
	ses.ActiveTool = ""
	ses.Accumulated = text

	return &dto.HandleMessageResponse{
		Reply: fmt.Sprintf(constant.Msg(ses.Language, "document_received"), utf8.RuneCountInString(text)),
	}
}

// --- failure tracking ---

// recordFailure advances the failure streak and, at the threshold, starts
// a cooldown. A streak that begins soon after a previous cooldown is
// treated as an ongoing outage and gets the long tier.
func (s *dialogService) recordFailure(ses *store.Session, err error) *dto.HandleMessageResponse {
	var genErr *llm.GenerationError
	if !errors.As(err, &genErr) {
		s.logger.Error("dialog", "unexpected handler error", map[string]interface{}{
			"error":   err.Error(),
			"user_id": ses.UserID,
		})
		return s.reply(ses, "generation_failed")
	}

	ses.FailureStreak++
	s.logger.Warn("dialog", "generation failed", map[string]interface{}{
		"error":   genErr.Error(),
		"streak":  ses.FailureStreak,
		"user_id": ses.UserID,
	})

	if ses.FailureStreak < s.cfg.MaxFailures {
		return s.reply(ses, "generation_failed")
	}

	now := s.now()
	ses.FailureStreak = 0

	if !ses.LastCooldown.IsZero() && now.Sub(ses.LastCooldown) < s.cfg.OutageWindow {
		ses.CooldownUntil = now.Add(s.cfg.LongCooldown)
		ses.LastCooldown = now
		return s.reply(ses, "cooldown_long")
	}

	ses.CooldownUntil = now.Add(s.cfg.ShortCooldown)
	ses.LastCooldown = now
	return s.reply(ses, "cooldown_entered")
}

func (s *dialogService) clearFailures(ses *store.Session) {
	ses.FailureStreak = 0
}

// --- helpers ---

func (s *dialogService) reply(ses *store.Session, key string) *dto.HandleMessageResponse {
	return &dto.HandleMessageResponse{Reply: constant.Msg(ses.Language, key)}
}

func validateLength(text string, min int) *ValidationError {
	got := utf8.RuneCountInString(text)
	if got < min {
		return &ValidationError{Min: min, Got: got}
	}
	return nil
}

func langOrEnglish(language string) string {
	if strings.EqualFold(language, "ru") {
		return "ru"
	}
	return "en"
}
