package events

import "time"

const (
	TypeWorkflowCompleted = "WORKFLOW_COMPLETED"
	TypeWorkflowFailed    = "WORKFLOW_FAILED"
	TypeFileStored        = "FILE_STORED"
	TypeMessageRelayed    = "MESSAGE_RELAYED"
)

// NewWorkflowCompleted records a workflow reaching its terminal action successfully.
func NewWorkflowCompleted(chatID int64, command string) Event {
	return BaseEvent{
		Type: TypeWorkflowCompleted,
		Data: map[string]interface{}{
			"chat_id": chatID,
			"command": command,
		},
		OccurredAt: time.Now(),
	}
}

// NewWorkflowFailed records a terminal action that surfaced a failure to the user.
func NewWorkflowFailed(chatID int64, command, reason string) Event {
	return BaseEvent{
		Type: TypeWorkflowFailed,
		Data: map[string]interface{}{
			"chat_id": chatID,
			"command": command,
			"reason":  reason,
		},
		OccurredAt: time.Now(),
	}
}

// NewFileStored records a successful upload together with its issued pin.
func NewFileStored(chatID int64, pinCode, filename string) Event {
	return BaseEvent{
		Type: TypeFileStored,
		Data: map[string]interface{}{
			"chat_id":  chatID,
			"pin":      pinCode,
			"filename": filename,
		},
		OccurredAt: time.Now(),
	}
}

// NewMessageRelayed records a message delivered through the relay API.
func NewMessageRelayed(chatID int64, recipient string) Event {
	return BaseEvent{
		Type: TypeMessageRelayed,
		Data: map[string]interface{}{
			"chat_id":   chatID,
			"recipient": recipient,
		},
		OccurredAt: time.Now(),
	}
}
