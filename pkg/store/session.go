package store

// Session represents one chat's in-progress multi-step workflow.
// A session exists only while a workflow is active: it is created when the
// user issues a workflow entry command, advanced on each qualifying message,
// and deleted on completion or cancellation.
type Session struct {
	ChatID  int64             `json:"chat_id"`
	Command string            `json:"command"` // entry command of the active workflow, e.g. "/sendmsg"
	State   string            `json:"state"`   // next expected input
	Fields  map[string]string `json:"fields"`  // values collected so far, keyed by field name
}

const (
	StateAwaitingRecipient = "AWAITING_RECIPIENT"
	StateAwaitingBody      = "AWAITING_BODY"
	StateAwaitingVideoURL  = "AWAITING_VIDEO_URL"
	StateAwaitingURL       = "AWAITING_URL"
	StateAwaitingFile      = "AWAITING_FILE"
	StateAwaitingPin       = "AWAITING_PIN"
	StateAwaitingQuery     = "AWAITING_QUERY"
)

// Field names used by the workflow table.
const (
	FieldRecipient = "recipient"
	FieldBody      = "body"
	FieldURL       = "url"
	FieldPin       = "pin"
	FieldQuery     = "query"
	FieldFileID    = "file_id"
	FieldFileName  = "file_name"
)

func NewSession(chatID int64, command, state string) *Session {
	return &Session{
		ChatID:  chatID,
		Command: command,
		State:   state,
		Fields:  make(map[string]string),
	}
}
