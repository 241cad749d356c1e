package service

import (
	"context"
	"sync"

	"tg-assist-be/internal/constant"
	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/pkg/logger"
	"tg-assist-be/internal/repository/contract"
	"tg-assist-be/internal/repository/memory"
	"tg-assist-be/pkg/events"
	"tg-assist-be/pkg/llm"
	"tg-assist-be/pkg/mediafetch"
	"tg-assist-be/pkg/pin"
	"tg-assist-be/pkg/store"
)

// MessageSink delivers outbound replies and fetches user uploads.
// Implemented by the Telegram client.
type MessageSink interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
	FetchDocument(ctx context.Context, fileID string) ([]byte, error)
}

// MessageRelay forwards a message to an external recipient.
type MessageRelay interface {
	Relay(ctx context.Context, recipient, body string) error
}

// MediaFetcher downloads videos and arbitrary URL resources.
type MediaFetcher interface {
	FetchVideo(ctx context.Context, url string) (*mediafetch.Media, error)
	FetchURL(ctx context.Context, url string) (*mediafetch.Media, error)
	CanFetchVideo() bool
}

// IConversationService is the per-chat conversation state machine.
type IConversationService interface {
	HandleEvent(ctx context.Context, event *dto.InboundEvent) error
}

type conversationService struct {
	sessions  *memory.SessionRepository
	sink      MessageSink
	relay     MessageRelay
	media     MediaFetcher
	files     contract.FileRecordRepository
	ai        llm.Provider
	pins      *pin.Generator
	publisher IPublisherService
	logger    logger.ILogger

	workflows map[string]*workflow
	// Serializes events per chat: a chat never has two events advance its
	// state machine concurrently. Distinct chats run fully in parallel.
	locks sync.Map // chatID -> *sync.Mutex
}

// NewConversationService wires the engine. Collaborators may be nil when
// their configuration is missing; the workflows that need them respond
// with a fixed "unavailable" reply instead.
func NewConversationService(
	sessions *memory.SessionRepository,
	sink MessageSink,
	relay MessageRelay,
	media MediaFetcher,
	files contract.FileRecordRepository,
	ai llm.Provider,
	pins *pin.Generator,
	publisher IPublisherService,
	log logger.ILogger,
) IConversationService {
	cs := &conversationService{
		sessions:  sessions,
		sink:      sink,
		relay:     relay,
		media:     media,
		files:     files,
		ai:        ai,
		pins:      pins,
		publisher: publisher,
		logger:    log,
	}
	cs.workflows = cs.buildWorkflows()
	return cs
}

func (cs *conversationService) lockFor(chatID int64) *sync.Mutex {
	mu, _ := cs.locks.LoadOrStore(chatID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (cs *conversationService) HandleEvent(ctx context.Context, event *dto.InboundEvent) error {
	if event == nil || event.ChatID == 0 {
		return nil
	}

	mu := cs.lockFor(event.ChatID)
	mu.Lock()
	defer mu.Unlock()

	if event.Kind == dto.EventKindCommand {
		return cs.handleCommand(ctx, event)
	}
	return cs.handleInput(ctx, event)
}

func (cs *conversationService) handleCommand(ctx context.Context, event *dto.InboundEvent) error {
	switch event.Command {
	case constant.CommandStart:
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyHelp)

	case constant.CommandCancel:
		if _, found := cs.sessions.Get(event.ChatID); found {
			cs.sessions.Delete(event.ChatID)
			return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyCancelled)
		}
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyNothingToCancel)
	}

	wf, ok := cs.workflows[event.Command]
	if !ok {
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyUnrecognized)
	}

	// A new command always discards whatever workflow was in progress.
	cs.sessions.Delete(event.ChatID)

	if wf.Available != nil && !wf.Available() {
		cs.logger.Warn("conversation", "workflow unavailable", map[string]interface{}{
			"command": wf.Command,
			"chat_id": event.ChatID,
		})
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyServiceUnavailable)
	}

	sess := store.NewSession(event.ChatID, wf.Command, wf.Steps[0].State)
	cs.sessions.Save(sess)
	return cs.sink.SendMessage(ctx, event.ChatID, wf.Steps[0].Prompt)
}

func (cs *conversationService) handleInput(ctx context.Context, event *dto.InboundEvent) error {
	sess, found := cs.sessions.Get(event.ChatID)
	if !found {
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyUnrecognized)
	}

	wf, ok := cs.workflows[sess.Command]
	if !ok {
		// Stale session from a workflow that no longer exists
		cs.sessions.Delete(event.ChatID)
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyUnrecognized)
	}

	idx := wf.stepIndex(sess.State)
	if idx < 0 {
		cs.sessions.Delete(event.ChatID)
		return cs.sink.SendMessage(ctx, event.ChatID, constant.ReplyUnrecognized)
	}
	step := wf.Steps[idx]

	// Wrong input kind or failed validation: re-prompt, session untouched.
	if event.Kind != step.Input {
		return cs.sink.SendMessage(ctx, event.ChatID, step.Retry)
	}
	if step.Input == dto.EventKindText {
		if step.Validate != nil && !step.Validate(event.Text) {
			return cs.sink.SendMessage(ctx, event.ChatID, step.Retry)
		}
		if step.Field != "" {
			sess.Fields[step.Field] = event.Text
		}
	} else if event.Document != nil {
		sess.Fields[store.FieldFileID] = event.Document.FileID
		sess.Fields[store.FieldFileName] = event.Document.FileName
	}

	if idx < len(wf.Steps)-1 {
		next := wf.Steps[idx+1]
		sess.State = next.State
		cs.sessions.Save(sess)
		return cs.sink.SendMessage(ctx, event.ChatID, next.Prompt)
	}

	return cs.executeTerminal(ctx, wf, sess)
}

// executeTerminal runs the workflow's terminal action. The session is
// cleared afterwards no matter how the action went: a failed collaborator
// never leaves the chat stuck mid-workflow.
func (cs *conversationService) executeTerminal(ctx context.Context, wf *workflow, sess *store.Session) error {
	defer cs.sessions.Delete(sess.ChatID)

	if wf.Progress != "" {
		if err := cs.sink.SendMessage(ctx, sess.ChatID, wf.Progress); err != nil {
			cs.logger.Warn("conversation", "progress message failed", map[string]interface{}{
				"command": wf.Command,
				"chat_id": sess.ChatID,
				"error":   err.Error(),
			})
		}
	}

	if err := wf.Execute(ctx, sess); err != nil {
		cs.logger.Error("conversation", "workflow failed", map[string]interface{}{
			"command": wf.Command,
			"chat_id": sess.ChatID,
			"error":   err.Error(),
		})
		cs.publishEvent(ctx, events.NewWorkflowFailed(sess.ChatID, wf.Command, err.Error()))
		return cs.sink.SendMessage(ctx, sess.ChatID, wf.FailureReply)
	}

	cs.publishEvent(ctx, events.NewWorkflowCompleted(sess.ChatID, wf.Command))
	return nil
}

func (cs *conversationService) publishEvent(ctx context.Context, event events.Event) {
	if cs.publisher == nil {
		return
	}
	if err := cs.publisher.Publish(ctx, event); err != nil {
		cs.logger.Warn("conversation", "event publish failed", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
