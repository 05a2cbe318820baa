package repository

import (
	"github.com/satmoko/studio-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{
		db: db,
	}
}

func (r *MessageRepository) Create(message *models.DirectMessage) error {
	return r.db.Create(message).Error
}

// Conversation returns both directions of the exchange between two
// members, oldest first. Insertion timestamp is the only ordering.
func (r *MessageRepository) Conversation(a, b string) ([]models.DirectMessage, error) {
	a, b = models.NormalizeEmail(a), models.NormalizeEmail(b)
	var messages []models.DirectMessage
	err := r.db.
		Where("(sender_email = ? AND receiver_email = ?) OR (sender_email = ? AND receiver_email = ?)", a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// MarkRead flips the read flag on everything the sender has sent the
// viewer, in one filtered bulk update.
func (r *MessageRepository) MarkRead(sender, viewer string) error {
	return r.db.Model(&models.DirectMessage{}).
		Where("sender_email = ? AND receiver_email = ? AND is_read = ?",
			models.NormalizeEmail(sender), models.NormalizeEmail(viewer), false).
		Update("is_read", true).Error
}

// Partners builds the inbox view for a member. Messages are folded in
// Go rather than with dialect-specific SQL; inbox sizes here are small.
func (r *MessageRepository) Partners(email string) ([]models.ConversationPartner, error) {
	email = models.NormalizeEmail(email)
	var messages []models.DirectMessage
	err := r.db.
		Where("sender_email = ? OR receiver_email = ?", email, email).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	partners := make([]models.ConversationPartner, 0)
	for _, m := range messages {
		other := m.SenderEmail
		if other == email {
			other = m.ReceiverEmail
		}
		i, ok := index[other]
		if !ok {
			// Newest message first, so the first sighting is the latest.
			index[other] = len(partners)
			partners = append(partners, models.ConversationPartner{
				Email:       other,
				LastMessage: m.Content,
				LastAt:      m.CreatedAt,
			})
			i = index[other]
		}
		if m.ReceiverEmail == email && !m.IsRead {
			partners[i].Unread++
		}
	}
	return partners, nil
}
