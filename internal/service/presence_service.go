package service

import (
	"time"

	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"go.uber.org/zap"
)

// PresenceService derives online state from heartbeat timestamps. There
// is no expiry sweep: a member simply stops being online once the
// window has passed without a heartbeat.
type PresenceService struct {
	members *repository.MemberRepository
	window  time.Duration
	logger  *zap.Logger
}

func NewPresenceService(members *repository.MemberRepository, window time.Duration, logger *zap.Logger) *PresenceService {
	return &PresenceService{
		members: members,
		window:  window,
		logger:  logger,
	}
}

// Heartbeat records activity. Presence is not worth failing a request
// over, so errors are logged and dropped.
func (s *PresenceService) Heartbeat(email string) {
	if err := s.members.Heartbeat(email, time.Now()); err != nil {
		s.logger.Warn("heartbeat write failed",
			zap.String("email", models.NormalizeEmail(email)),
			zap.Error(err))
	}
}

// IsOnline is a pure function of the wall-clock delta: online while
// now - lastSeen < window.
func (s *PresenceService) IsOnline(lastSeen *time.Time, now time.Time) bool {
	if lastSeen == nil {
		return false
	}
	return now.Sub(*lastSeen) < s.window
}

func (s *PresenceService) Get(email string) (*models.PresenceResponse, error) {
	member, err := s.members.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return &models.PresenceResponse{
		Email:    member.Email,
		Online:   s.IsOnline(member.LastSeen, time.Now()),
		LastSeen: member.LastSeen,
	}, nil
}
