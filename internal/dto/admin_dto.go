package dto

import "time"

type PaginationQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

func (q *PaginationQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
}

type StoredFileResponse struct {
	Pin         string    `json:"pin"`
	Filename    string    `json:"filename"`
	OwnerChatId int64     `json:"owner_chat_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type StoredFileListResponse struct {
	Files []StoredFileResponse `json:"files"`
	Total int64                `json:"total"`
}

type AuditEntryResponse struct {
	Level     string                 `json:"level"`
	Module    string                 `json:"module"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
	Total   int64                `json:"total"`
}
