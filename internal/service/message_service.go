package service

import (
	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
)

type MessageService struct {
	messages *repository.MessageRepository
	members  *repository.MemberRepository
}

func NewMessageService(messages *repository.MessageRepository, members *repository.MemberRepository) *MessageService {
	return &MessageService{
		messages: messages,
		members:  members,
	}
}

func (s *MessageService) Send(senderEmail string, req models.SendMessageRequest) (*models.DirectMessage, error) {
	receiver, err := s.members.GetByEmail(req.ReceiverEmail)
	if err != nil {
		return nil, err
	}

	message := &models.DirectMessage{
		SenderEmail:   models.NormalizeEmail(senderEmail),
		ReceiverEmail: receiver.Email,
		Content:       req.Content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns the exchange with the other member and marks
// their messages to the viewer as read, which is what opening a
// conversation means.
func (s *MessageService) Conversation(viewerEmail, otherEmail string) ([]models.DirectMessage, error) {
	messages, err := s.messages.Conversation(viewerEmail, otherEmail)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkRead(otherEmail, viewerEmail); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) Partners(viewerEmail string) ([]models.ConversationPartner, error) {
	return s.messages.Partners(viewerEmail)
}
