package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is one turn of a practice transcript. Messages are embedded in
// their conversation as a jsonb array; IDs are assigned by whoever creates
// the message and are unique within a conversation.
type Message struct {
	ID          string `json:"id"`
	Sender      string `json:"sender"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

type Conversation struct {
	ID            uuid.UUID                    `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID                    `gorm:"type:uuid;not null;index" json:"userId"`
	Title         string                       `gorm:"size:255;not null" json:"title"`
	AssistantName string                       `gorm:"size:255;not null" json:"assistantName"`
	Gender        string                       `gorm:"size:10;not null" json:"gender"`
	Scenario      string                       `gorm:"size:50;not null" json:"scenario"`
	Messages      datatypes.JSONSlice[Message] `json:"messages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
