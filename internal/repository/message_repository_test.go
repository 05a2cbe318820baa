package repository

import (
	"testing"

	"github.com/satmoko/studio-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, repo *MessageRepository, from, to, content string) {
	t.Helper()
	require.NoError(t, repo.Create(&models.DirectMessage{
		SenderEmail:   from,
		ReceiverEmail: to,
		Content:       content,
	}))
}

func TestConversation_BothDirectionsInOrder(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	sendMessage(t, repo, "a@x.com", "b@x.com", "halo")
	sendMessage(t, repo, "b@x.com", "a@x.com", "halo juga")
	sendMessage(t, repo, "a@x.com", "c@x.com", "not in this conversation")

	messages, err := repo.Conversation("a@x.com", "b@x.com")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "halo", messages[0].Content)
	assert.Equal(t, "halo juga", messages[1].Content)
}

func TestMarkRead_OnlyTargetsOneDirection(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	sendMessage(t, repo, "a@x.com", "b@x.com", "one")
	sendMessage(t, repo, "a@x.com", "b@x.com", "two")
	sendMessage(t, repo, "b@x.com", "a@x.com", "reply")

	require.NoError(t, repo.MarkRead("a@x.com", "b@x.com"))

	messages, err := repo.Conversation("a@x.com", "b@x.com")
	require.NoError(t, err)
	for _, m := range messages {
		if m.SenderEmail == "a@x.com" {
			assert.True(t, m.IsRead)
		} else {
			assert.False(t, m.IsRead, "the viewer's own unread replies must not be flipped")
		}
	}
}

func TestPartners_UnreadCountsAndLatestMessage(t *testing.T) {
	repo := NewMessageRepository(newTestDB(t))
	sendMessage(t, repo, "b@x.com", "a@x.com", "first")
	sendMessage(t, repo, "b@x.com", "a@x.com", "second")
	sendMessage(t, repo, "a@x.com", "c@x.com", "outbound")

	partners, err := repo.Partners("a@x.com")
	require.NoError(t, err)
	require.Len(t, partners, 2)

	byEmail := map[string]models.ConversationPartner{}
	for _, p := range partners {
		byEmail[p.Email] = p
	}

	b := byEmail["b@x.com"]
	assert.Equal(t, int64(2), b.Unread)
	assert.Equal(t, "second", b.LastMessage)

	c := byEmail["c@x.com"]
	assert.Equal(t, int64(0), c.Unread)
	assert.Equal(t, "outbound", c.LastMessage)
}
