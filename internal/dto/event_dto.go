package dto

import "time"

// AuditEventMessage is the envelope published on the in-process audit topic.
type AuditEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
