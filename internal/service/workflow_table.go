package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tg-assist-be/internal/constant"
	"tg-assist-be/internal/dto"
	"tg-assist-be/internal/entity"
	"tg-assist-be/pkg/events"
	"tg-assist-be/pkg/store"

	"github.com/google/uuid"
)

// workflowStep is one expected input in a linear workflow.
type workflowStep struct {
	State    string
	Prompt   string
	Input    string // dto.EventKindText or dto.EventKindDocument
	Field    string
	Validate func(string) bool // nil accepts any text
	Retry    string            // re-prompt sent on invalid or mismatched input
}

// workflow is one declarative command chain. The engine is a generic
// interpreter over these tables, so adding a workflow is a data change.
type workflow struct {
	Command      string
	Steps        []workflowStep
	Available    func() bool // nil means always available
	Progress     string      // sent before the terminal action runs
	FailureReply string
	Execute      func(ctx context.Context, sess *store.Session) error
}

func (w *workflow) stepIndex(state string) int {
	for i := range w.Steps {
		if w.Steps[i].State == state {
			return i
		}
	}
	return -1
}

func isValidRecipient(s string) bool {
	if len(s) < 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isYouTubeURL(s string) bool {
	return strings.Contains(s, "youtube.com/") || strings.Contains(s, "youtu.be/")
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (cs *conversationService) buildWorkflows() map[string]*workflow {
	table := []*workflow{
		{
			Command: constant.CommandSendMsg,
			Steps: []workflowStep{
				{
					State:    store.StateAwaitingRecipient,
					Prompt:   constant.PromptRecipient,
					Input:    dto.EventKindText,
					Field:    store.FieldRecipient,
					Validate: isValidRecipient,
					Retry:    constant.RetryRecipient,
				},
				{
					State:  store.StateAwaitingBody,
					Prompt: constant.PromptBody,
					Input:  dto.EventKindText,
					Field:  store.FieldBody,
					Retry:  constant.PromptBody,
				},
			},
			Available:    func() bool { return cs.relay != nil },
			Progress:     constant.ProgressSendMsg,
			FailureReply: constant.ReplyMsgFailed,
			Execute:      cs.runSendMessage,
		},
		{
			Command: constant.CommandYtDownload,
			Steps: []workflowStep{
				{
					State:    store.StateAwaitingVideoURL,
					Prompt:   constant.PromptVideoURL,
					Input:    dto.EventKindText,
					Field:    store.FieldURL,
					Validate: isYouTubeURL,
					Retry:    constant.RetryVideoURL,
				},
			},
			Available:    func() bool { return cs.media != nil && cs.media.CanFetchVideo() },
			Progress:     constant.ProgressVideo,
			FailureReply: constant.ReplyVideoFailed,
			Execute:      cs.runVideoDownload,
		},
		{
			Command: constant.CommandDownloadURL,
			Steps: []workflowStep{
				{
					State:    store.StateAwaitingURL,
					Prompt:   constant.PromptURL,
					Input:    dto.EventKindText,
					Field:    store.FieldURL,
					Validate: isHTTPURL,
					Retry:    constant.RetryURL,
				},
			},
			Available:    func() bool { return cs.media != nil },
			Progress:     constant.ProgressURL,
			FailureReply: constant.ReplyURLFailed,
			Execute:      cs.runURLDownload,
		},
		{
			Command: constant.CommandUploadFile,
			Steps: []workflowStep{
				{
					State:  store.StateAwaitingFile,
					Prompt: constant.PromptFile,
					Input:  dto.EventKindDocument,
					Retry:  constant.RetryFile,
				},
			},
			Available:    func() bool { return cs.files != nil },
			Progress:     constant.ProgressUpload,
			FailureReply: constant.ReplyUploadFailed,
			Execute:      cs.runFileUpload,
		},
		{
			Command: constant.CommandGetFile,
			Steps: []workflowStep{
				{
					State:  store.StateAwaitingPin,
					Prompt: constant.PromptPin,
					Input:  dto.EventKindText,
					Field:  store.FieldPin,
					Retry:  constant.RetryPin,
				},
			},
			Available:    func() bool { return cs.files != nil },
			Progress:     constant.ProgressGetFile,
			FailureReply: constant.ReplyGetFileFailed,
			Execute:      cs.runFileRetrieve,
		},
		{
			Command: constant.CommandAskAI,
			Steps: []workflowStep{
				{
					State:  store.StateAwaitingQuery,
					Prompt: constant.PromptQuery,
					Input:  dto.EventKindText,
					Field:  store.FieldQuery,
					Retry:  constant.RetryQuery,
				},
			},
			Available:    func() bool { return cs.ai != nil },
			Progress:     constant.ProgressAI,
			FailureReply: constant.ReplyAIFailed,
			Execute:      cs.runAIQuery,
		},
	}

	workflows := make(map[string]*workflow, len(table))
	for _, wf := range table {
		workflows[wf.Command] = wf
	}
	return workflows
}

// --- Terminal actions ---

func (cs *conversationService) runSendMessage(ctx context.Context, sess *store.Session) error {
	recipient := sess.Fields[store.FieldRecipient]
	body := sess.Fields[store.FieldBody]

	if err := cs.relay.Relay(ctx, recipient, body); err != nil {
		return fmt.Errorf("relay to %s: %w", recipient, err)
	}

	cs.publishEvent(ctx, events.NewMessageRelayed(sess.ChatID, recipient))
	return cs.sink.SendMessage(ctx, sess.ChatID, constant.ReplyMsgSent)
}

func (cs *conversationService) runVideoDownload(ctx context.Context, sess *store.Session) error {
	media, err := cs.media.FetchVideo(ctx, sess.Fields[store.FieldURL])
	if err != nil {
		return fmt.Errorf("fetch video: %w", err)
	}

	caption := "Video"
	if media.Title != "" {
		caption = "Video: " + media.Title
	}
	if err := cs.sink.SendDocument(ctx, sess.ChatID, media.Filename, media.Data, caption); err != nil {
		return fmt.Errorf("deliver video: %w", err)
	}
	return cs.sink.SendMessage(ctx, sess.ChatID, constant.ReplyVideoSent)
}

func (cs *conversationService) runURLDownload(ctx context.Context, sess *store.Session) error {
	media, err := cs.media.FetchURL(ctx, sess.Fields[store.FieldURL])
	if err != nil {
		return fmt.Errorf("fetch url: %w", err)
	}

	if err := cs.sink.SendDocument(ctx, sess.ChatID, media.Filename, media.Data, media.Filename); err != nil {
		return fmt.Errorf("deliver file: %w", err)
	}
	return cs.sink.SendMessage(ctx, sess.ChatID, constant.ReplyURLSent)
}

func (cs *conversationService) runFileUpload(ctx context.Context, sess *store.Session) error {
	fileID := sess.Fields[store.FieldFileID]
	filename := sess.Fields[store.FieldFileName]

	data, err := cs.sink.FetchDocument(ctx, fileID)
	if err != nil {
		return fmt.Errorf("fetch uploaded document: %w", err)
	}

	pinCode := cs.pins.GenerateUnique(ctx, cs.files.ExistsWithPin)
	record := &entity.FileRecord{
		Id:          uuid.New(),
		Pin:         pinCode,
		Filename:    filename,
		Data:        data,
		OwnerChatId: sess.ChatID,
		CreatedAt:   time.Now(),
	}
	if err := cs.files.Create(ctx, record); err != nil {
		return fmt.Errorf("store file record: %w", err)
	}

	cs.publishEvent(ctx, events.NewFileStored(sess.ChatID, pinCode, filename))
	return cs.sink.SendMessage(ctx, sess.ChatID,
		fmt.Sprintf("✅ File stored! Retrieve it with /get_file using PIN: %s", pinCode))
}

func (cs *conversationService) runFileRetrieve(ctx context.Context, sess *store.Session) error {
	pinCode := strings.ToUpper(strings.TrimSpace(sess.Fields[store.FieldPin]))

	record, err := cs.files.FindByPin(ctx, pinCode)
	if err != nil {
		return fmt.Errorf("look up pin %s: %w", pinCode, err)
	}
	if record == nil {
		// Absent record is a normal outcome, not a collaborator failure
		return cs.sink.SendMessage(ctx, sess.ChatID, constant.ReplyFileNotFound)
	}

	return cs.sink.SendDocument(ctx, sess.ChatID, record.Filename, record.Data, record.Filename)
}

func (cs *conversationService) runAIQuery(ctx context.Context, sess *store.Session) error {
	reply, err := cs.ai.Generate(ctx, sess.Fields[store.FieldQuery])
	if err != nil {
		return fmt.Errorf("ai query: %w", err)
	}
	return cs.sink.SendMessage(ctx, sess.ChatID, reply)
}
