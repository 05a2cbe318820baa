package models

import "time"

type DirectMessage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SenderEmail   string    `json:"sender_email" gorm:"index;not null"`
	ReceiverEmail string    `json:"receiver_email" gorm:"index;not null"`
	Content       string    `json:"content" gorm:"not null"`
	IsRead        bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ReceiverEmail string `json:"receiver_email" validate:"required,email"`
	Content       string `json:"content" validate:"required"`
}

// ConversationPartner is one row of the inbox view: the other party,
// the newest message exchanged with them and how many of their messages
// the viewer has not read yet.
type ConversationPartner struct {
	Email       string    `json:"email"`
	LastMessage string    `json:"last_message"`
	LastAt      time.Time `json:"last_at"`
	Unread      int64     `json:"unread"`
}

type PresenceResponse struct {
	Email    string     `json:"email"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"last_seen"`
}
