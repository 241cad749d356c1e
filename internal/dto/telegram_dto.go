package dto

import "strings"

// Raw Telegram webhook payload, reduced to the fields the bot consumes.

type TelegramUpdate struct {
	UpdateId int64            `json:"update_id"`
	Message  *TelegramMessage `json:"message"`
}

type TelegramMessage struct {
	MessageId int64              `json:"message_id"`
	Chat      TelegramChat       `json:"chat"`
	Text      string             `json:"text"`
	Document  *TelegramDocument  `json:"document"`
	Video     *TelegramDocument  `json:"video"`
	Audio     *TelegramDocument  `json:"audio"`
	Photo     []TelegramPhotoSize `json:"photo"`
}

type TelegramChat struct {
	Id int64 `json:"id"`
}

type TelegramDocument struct {
	FileId   string `json:"file_id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

type TelegramPhotoSize struct {
	FileId   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
}

// Normalized inbound event the conversation engine consumes.

const (
	EventKindCommand  = "command"
	EventKindText     = "text"
	EventKindDocument = "document"
)

type DocumentRef struct {
	FileID   string
	FileName string
	FileSize int64
}

type InboundEvent struct {
	UpdateID int64
	ChatID   int64
	Kind     string
	Command  string // set when Kind == command, lowercased, bot suffix stripped
	Text     string
	Document *DocumentRef
}

// ToInboundEvent normalizes a raw update. It returns nil for updates the
// bot does not handle (no message, no chat, empty content).
func (u *TelegramUpdate) ToInboundEvent() *InboundEvent {
	if u == nil || u.Message == nil || u.Message.Chat.Id == 0 {
		return nil
	}
	msg := u.Message

	ev := &InboundEvent{
		UpdateID: u.UpdateId,
		ChatID:   msg.Chat.Id,
	}

	if doc := msg.documentRef(); doc != nil {
		ev.Kind = EventKindDocument
		ev.Document = doc
		return ev
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if strings.HasPrefix(text, "/") {
		command := strings.Fields(text)[0]
		// "/cmd@SomeBot" and "/cmd" are the same command
		if at := strings.Index(command, "@"); at > 0 {
			command = command[:at]
		}
		ev.Kind = EventKindCommand
		ev.Command = strings.ToLower(command)
		return ev
	}

	ev.Kind = EventKindText
	ev.Text = text
	return ev
}

func (m *TelegramMessage) documentRef() *DocumentRef {
	switch {
	case m.Document != nil:
		return &DocumentRef{FileID: m.Document.FileId, FileName: m.Document.FileName, FileSize: m.Document.FileSize}
	case m.Video != nil:
		return &DocumentRef{FileID: m.Video.FileId, FileName: fallbackName(m.Video.FileName, "video.mp4"), FileSize: m.Video.FileSize}
	case m.Audio != nil:
		return &DocumentRef{FileID: m.Audio.FileId, FileName: fallbackName(m.Audio.FileName, "audio.mp3"), FileSize: m.Audio.FileSize}
	case len(m.Photo) > 0:
		// Telegram orders photo sizes smallest first
		largest := m.Photo[len(m.Photo)-1]
		return &DocumentRef{FileID: largest.FileId, FileName: "photo.jpg", FileSize: largest.FileSize}
	}
	return nil
}

func fallbackName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
