package service

import (
	"context"
	"testing"

	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTopupService(t *testing.T) (*TopupService, *repository.MemberRepository) {
	t.Helper()
	db := newTestDB(t)
	members := repository.NewMemberRepository(db)
	topups := repository.NewTopupRepository(db)
	logger := zap.NewNop()
	svc := NewTopupService(db, topups, members, nil,
		notify.NoOp{}, email.NewService("", "noreply@test", "Test", logger), logger)
	return svc, members
}

func createTopup(t *testing.T, svc *TopupService, email string, amount int64) *models.TopupRequest {
	t.Helper()
	topup, err := svc.Create(context.Background(), email,
		models.CreateTopupRequest{Amount: amount, Price: amount * 100},
		nil, "", "", "https://receipts.example/1.jpg")
	require.NoError(t, err)
	return topup
}

func TestTopupApprove_GrantsOnce(t *testing.T) {
	svc, members := newTopupService(t)
	seedMember(t, members, "a@x.com", 10)

	topup := createTopup(t, svc, "a@x.com", 500)
	assert.Equal(t, models.TopupStatusPending, topup.Status)
	assert.Equal(t, "https://receipts.example/1.jpg", topup.ReceiptURL)

	require.NoError(t, svc.Approve(topup.TID))

	member, err := members.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(510), member.Credits)
	assert.Equal(t, models.MemberStatusActive, member.Status)

	// A second approval must not re-apply the grant.
	err = svc.Approve(topup.TID)
	require.ErrorIs(t, err, ErrTopupAlreadyDecided)

	member, err = members.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(510), member.Credits)
}

func TestTopupReject_DoesNotGrant(t *testing.T) {
	svc, members := newTopupService(t)
	seedMember(t, members, "a@x.com", 10)

	topup := createTopup(t, svc, "a@x.com", 500)
	require.NoError(t, svc.Reject(topup.TID))

	member, err := members.GetByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(10), member.Credits)
	assert.Equal(t, models.MemberStatusPending, member.Status)

	// Rejected requests cannot be approved afterwards.
	err = svc.Approve(topup.TID)
	require.ErrorIs(t, err, ErrTopupAlreadyDecided)
}

func TestTopupCreate_UnknownMember(t *testing.T) {
	svc, _ := newTopupService(t)

	_, err := svc.Create(context.Background(), "ghost@x.com",
		models.CreateTopupRequest{Amount: 100, Price: 10000}, nil, "", "", "")
	require.ErrorIs(t, err, repository.ErrMemberNotFound)
}

func TestTopupQueues(t *testing.T) {
	svc, members := newTopupService(t)
	seedMember(t, members, "a@x.com", 0)
	seedMember(t, members, "b@x.com", 0)

	first := createTopup(t, svc, "a@x.com", 100)
	createTopup(t, svc, "b@x.com", 200)

	pending, err := svc.ListPending()
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, svc.Approve(first.TID))

	pending, err = svc.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b@x.com", pending[0].Email)

	mine, err := svc.ListByEmail("a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.TopupStatusApproved, mine[0].Status)
}
