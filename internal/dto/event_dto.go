package dto

import "time"

// BotEventMessage is the envelope bot events travel in on the in-process bus.
type BotEventMessage struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}
