package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/schema"
	"github.com/tbxark/talentscout/candidate"
	"github.com/tbxark/talentscout/command"
	"github.com/tbxark/talentscout/dialogue"
	"github.com/tbxark/talentscout/extract"
	"github.com/tbxark/talentscout/language"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/questions"
	"github.com/tbxark/talentscout/sentiment"
	"github.com/tbxark/talentscout/store"
	"github.com/tbxark/talentscout/types"
)

// IntakeFlow drives candidate sessions turn by turn.
type IntakeFlow struct {
	schema            string
	spec              FormSpec[*candidate.Record]
	extractor         extract.Extractor
	questionGenerator questions.Generator
	dialogueGenerator dialogue.Generator[*candidate.Record]
	localizer         dialogue.Localizer
	commandParser     command.Parser

	analyzer    sentiment.Analyzer
	detector    language.Detector
	trimmer     Trimmer
	store       store.Store
	hasher      store.Hasher
	saveEnabled bool
}

type FlowOption func(*IntakeFlow)

// WithStore enables saving finished candidates to s.
func WithStore(s store.Store, hasher store.Hasher) FlowOption {
	return func(f *IntakeFlow) {
		f.store = s
		f.saveEnabled = s != nil
		if hasher != nil {
			f.hasher = hasher
		}
	}
}

func WithSentimentAnalyzer(a sentiment.Analyzer) FlowOption {
	return func(f *IntakeFlow) {
		f.analyzer = a
	}
}

func WithLanguageDetector(d language.Detector) FlowOption {
	return func(f *IntakeFlow) {
		f.detector = d
	}
}

// WithHistoryTrimmer bounds the transcript sent for open-ended replies.
// Extraction always sees the full transcript.
func WithHistoryTrimmer(t Trimmer) FlowOption {
	return func(f *IntakeFlow) {
		f.trimmer = t
	}
}

func NewIntakeFlow(
	spec FormSpec[*candidate.Record],
	extractor extract.Extractor,
	questionGen questions.Generator,
	dialogueGen dialogue.Generator[*candidate.Record],
	localizer dialogue.Localizer,
	commandParser command.Parser,
	opts ...FlowOption,
) (*IntakeFlow, error) {
	schemaJSON, err := spec.JsonSchema()
	if err != nil {
		return nil, err
	}
	flow := &IntakeFlow{
		schema:            schemaJSON,
		spec:              spec,
		extractor:         extractor,
		questionGenerator: questionGen,
		dialogueGenerator: dialogueGen,
		localizer:         localizer,
		commandParser:     commandParser,
		analyzer:          sentiment.NewLexiconAnalyzer(),
		detector:          language.WhatlangDetector{},
		hasher:            store.DigestHasher{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(flow)
		}
	}
	return flow, nil
}

// NewOracleIntakeFlow wires every step to o with local fallbacks.
func NewOracleIntakeFlow(o oracle.Oracle, opts ...FlowOption) (*IntakeFlow, error) {
	extractor, err := extract.NewToolBasedExtractor(o)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	questionGen, err := questions.NewDefaultGenerator(o)
	if err != nil {
		return nil, fmt.Errorf("failed to create question generator: %w", err)
	}
	dialogueGen := dialogue.NewFailbackDialogueGenerator[*candidate.Record](
		dialogue.NewOracleDialogueGenerator[*candidate.Record](o),
		&dialogue.LocalDialogueGenerator[*candidate.Record]{},
	)
	return NewIntakeFlow(
		candidate.Spec{},
		extractor,
		questionGen,
		dialogueGen,
		dialogue.NewOracleLocalizer(o),
		command.NewLocalCommandParser(),
		opts...,
	)
}

func (f *IntakeFlow) NewSession() *Session {
	return NewSession(f.detector)
}

func (f *IntakeFlow) SaveEnabled() bool {
	return f.saveEnabled
}

// HandleTurn processes one user message. onChunk, when set, sees every
// assistant message as it is produced. Oracle failures never fail the turn.
func (f *IntakeFlow) HandleTurn(ctx context.Context, s *Session, input string, onChunk StreamHandler) (*TurnResult, error) {
	if s.Ended() {
		return nil, ErrSessionEnded
	}
	ctx = callbacks.EnsureRunInfo(ctx, "IntakeFlow", "Agent")
	ctx = callbacks.OnStart(ctx, map[string]any{
		"session": s.ID,
		"input":   input,
		"phase":   string(s.Phase),
	})

	result, err := f.runTurn(ctx, s, input, onChunk)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	callbacks.OnEnd(ctx, map[string]any{
		"session": s.ID,
		"phase":   string(result.Phase),
		"replies": len(result.Replies),
	})
	return result, nil
}

func (f *IntakeFlow) runTurn(ctx context.Context, s *Session, input string, onChunk StreamHandler) (*TurnResult, error) {
	result := &TurnResult{}

	if s.Language.Observe(input) {
		s.pinLanguage()
		result.LanguageSwitched = true
		slog.Info("Language detected", "session", s.ID, "lang", s.Language.Active(), "name", s.Language.Name())
	}
	if f.analyzer != nil {
		result.Score = f.analyzer.Score(input)
		result.Mood = sentiment.MoodOf(result.Score)
		slog.Debug("Sentiment", "session", s.ID, "score", result.Score, "mood", result.Mood)
	}

	cmd, err := f.commandParser.ParseCommand(ctx, input)
	if err != nil {
		slog.Warn("Command parsing failed, treating turn as an answer", "session", s.ID, "error", err)
		cmd = command.None
	}
	if cmd == command.Exit {
		s.appendUser(input)
		f.end(ctx, s, result, onChunk)
		return f.finishResult(s, result), nil
	}

	s.appendUser(input)
	before := s.Record
	snapshot, err := f.extractor.Extract(ctx, f.toolRequest(s))
	if err != nil {
		slog.Warn("Extraction failed, treating turn as no new information", "session", s.ID, "error", err)
		snapshot = nil
	}
	merged, err := candidate.Merge(s.Record, snapshot)
	if err != nil {
		slog.Warn("Merge failed, keeping record", "session", s.ID, "error", err)
	} else {
		s.Record = merged
	}
	result.Changed = candidate.ChangedFields(before, s.Record)
	slog.Debug("Merged snapshot", "session", s.ID, "changed", result.Changed)

	if field, missing := candidate.NextMissingField(s.Record); missing {
		s.Phase = types.PhaseCollecting
		s.Asking = field
		prompt := dialogue.FieldPrompt(field)
		if s.Language.Translatable() {
			prompt = f.localizer.Localize(ctx, prompt, s.Language.Active())
		}
		f.emit(s, result, prompt, onChunk)
		return f.finishResult(s, result), nil
	}
	s.Asking = ""

	if !s.QuestionsGenerated && s.Record.Has(candidate.FieldTechStack) {
		s.Phase = types.PhaseAwaitingStackQuestions
		f.askStackQuestions(ctx, s, result, onChunk)
		s.Phase = types.PhaseFreeChat
		return f.finishResult(s, result), nil
	}

	s.Phase = types.PhaseFreeChat
	req := f.toolRequest(s)
	if f.trimmer != nil {
		req.Messages = f.trimmer.Trim(req.Messages)
	}
	f.streamReply(ctx, s, result, req, dialogue.ReplyApology, onChunk)
	return f.finishResult(s, result), nil
}

func (f *IntakeFlow) askStackQuestions(ctx context.Context, s *Session, result *TurnResult, onChunk StreamHandler) {
	ackReq := f.toolRequest(s)
	ackReq.Messages = []*schema.Message{
		s.Transcript[0],
		schema.AssistantMessage(dialogue.QuestionsAck, nil),
	}
	if s.instruction != nil {
		ackReq.Messages = []*schema.Message{
			s.Transcript[0],
			s.instruction,
			schema.AssistantMessage(dialogue.QuestionsAck, nil),
		}
	}
	f.streamReply(ctx, s, result, ackReq, dialogue.QuestionsAck, onChunk)

	techs := candidateTechs(s.Record)
	generated, err := f.questionGenerator.Generate(ctx, techs)
	if err != nil || len(generated) == 0 {
		slog.Warn("Question generation failed, using templates", "session", s.ID, "error", err)
		generated, _ = questions.TemplateGenerator{}.Generate(ctx, techs)
	}
	s.Questions = generated
	s.QuestionsGenerated = true
	f.emit(s, result, dialogue.FormatQuestions(generated), onChunk)
	slog.Info("Generated stack questions", "session", s.ID, "technologies", len(generated))
}

func candidateTechs(r *candidate.Record) []string {
	techs := make([]string, 0, len(r.TechStack))
	for _, tech := range r.TechStack {
		if tech = strings.TrimSpace(tech); tech != "" {
			techs = append(techs, tech)
		}
	}
	return techs
}

// streamReply streams one assistant message; fallback is emitted when the
// stream cannot start or yields nothing.
func (f *IntakeFlow) streamReply(ctx context.Context, s *Session, result *TurnResult, req *types.ToolRequest[*candidate.Record], fallback string, onChunk StreamHandler) {
	stream, err := f.dialogueGenerator.GenerateDialogueStream(ctx, req)
	if err != nil {
		slog.Warn("Reply stream failed", "session", s.ID, "phase", req.Phase, "error", err)
		f.emit(s, result, fallback, onChunk)
		return
	}
	forwarded := false
	text, err := dialogue.Collect(stream, func(chunk string) {
		if onChunk != nil {
			onChunk(StreamEvent{Text: chunk})
			forwarded = true
		}
	})
	if err != nil {
		slog.Warn("Reply stream interrupted", "session", s.ID, "error", err)
	}
	if strings.TrimSpace(text) == "" {
		if forwarded {
			onChunk(StreamEvent{Done: true})
		}
		f.emit(s, result, fallback, onChunk)
		return
	}
	s.appendAssistant(text)
	result.Replies = append(result.Replies, text)
	if onChunk != nil {
		onChunk(StreamEvent{Done: true})
	}
}

func (f *IntakeFlow) emit(s *Session, result *TurnResult, text string, onChunk StreamHandler) {
	s.appendAssistant(text)
	result.Replies = append(result.Replies, text)
	if onChunk != nil {
		onChunk(StreamEvent{Text: text})
		onChunk(StreamEvent{Text: "", Done: true})
	}
}

func (f *IntakeFlow) toolRequest(s *Session) *types.ToolRequest[*candidate.Record] {
	return &types.ToolRequest[*candidate.Record]{
		State:            s.Record,
		StateSchema:      f.schema,
		Phase:            s.Phase,
		Messages:         s.Transcript,
		MissingFields:    f.spec.MissingFacts(s.Record),
		ValidationErrors: f.spec.ValidateFacts(s.Record),
	}
}

func (f *IntakeFlow) finishResult(s *Session, result *TurnResult) *TurnResult {
	result.Phase = s.Phase
	result.Asking = s.Asking
	result.Language = s.Language.Active()
	return result
}

// end persists when enabled and possible, then closes the session with the
// closing message.
func (f *IntakeFlow) end(ctx context.Context, s *Session, result *TurnResult, onChunk StreamHandler) {
	if f.saveEnabled && s.Record.Has(candidate.FieldFullName) {
		if err := f.persist(ctx, s); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to save candidate: %v", err))
		} else {
			result.Saved = true
		}
	}
	s.Phase = types.PhaseEnded
	s.Asking = ""
	f.emit(s, result, dialogue.ClosingMessage, onChunk)
	slog.Info("Session ended", "session", s.ID, "saved", result.Saved, "summary", f.spec.Summary(s.Record))
}

// Finish ends the session without an exit keyword. Finishing an ended
// session changes nothing.
func (f *IntakeFlow) Finish(ctx context.Context, s *Session, onChunk StreamHandler) *TurnResult {
	result := &TurnResult{}
	if !s.Ended() {
		f.end(ctx, s, result, onChunk)
	}
	return f.finishResult(s, result)
}

// Save appends the current record to the store and counts it in SavedRows.
// The record stays in the session whatever the outcome.
func (f *IntakeFlow) Save(ctx context.Context, s *Session) error {
	if !f.saveEnabled {
		return ErrPersistenceDisabled
	}
	if err := f.persist(ctx, s); err != nil {
		return err
	}
	s.SavedRows++
	return nil
}

func (f *IntakeFlow) persist(ctx context.Context, s *Session) error {
	row, err := store.RowFromRecord(s.Record, f.hasher)
	if err != nil {
		return err
	}
	if err := f.store.Append(ctx, row); err != nil {
		slog.Error("Failed to save candidate", "session", s.ID, "path", f.store.Path(), "error", err)
		return fmt.Errorf("save candidate: %w", err)
	}
	slog.Info("Saved candidate", "session", s.ID, "path", f.store.Path())
	return nil
}

// OverrideLanguage pins the reply language by hand and stops auto detection.
func (f *IntakeFlow) OverrideLanguage(s *Session, code string) {
	if s.Language.Override(code) || s.instruction != nil {
		s.pinLanguage()
	}
}

// Reset starts a new candidate in s.
func (f *IntakeFlow) Reset(s *Session) {
	s.Reset()
}
