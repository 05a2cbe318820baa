package service

import (
	"errors"

	"github.com/satmoko/studio-backend/internal/models"
	"github.com/satmoko/studio-backend/internal/repository"
	"github.com/satmoko/studio-backend/pkg/bcrypt"
	"github.com/satmoko/studio-backend/pkg/email"
	"github.com/satmoko/studio-backend/pkg/jwt"
	"go.uber.org/zap"
)

type AuthService struct {
	members      *repository.MemberRepository
	emailService *email.Service
	tokens       *jwt.TokenManager
	logger       *zap.Logger
}

func NewAuthService(members *repository.MemberRepository, emailService *email.Service, tokens *jwt.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		members:      members,
		emailService: emailService,
		tokens:       tokens,
		logger:       logger,
	}
}

// Register creates a pending member with an empty balance. Activation
// only happens through payment settlement or an admin decision.
func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.PlanID != "" {
		if _, ok := models.GetPlan(req.PlanID); !ok {
			return nil, ErrUnknownPlan
		}
	}

	emailAddr := models.NormalizeEmail(req.Email)

	exists, err := s.members.EmailExists(emailAddr)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		FullName: req.FullName,
		Email:    emailAddr,
		Password: hashedPassword,
		Status:   models.MemberStatusPending,
		Credits:  0,
	}
	if err := s.members.Create(member); err != nil {
		return nil, err
	}

	go s.emailService.SendWelcome(member.Email, member.FullName)

	token, err := s.tokens.Generate(member.Email, member.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:  token,
		Member: *member,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	member, err := s.members.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(member.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := s.tokens.Generate(member.Email, member.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:  token,
		Member: *member,
	}, nil
}

func (s *AuthService) GetProfile(email string) (*models.Member, error) {
	return s.members.GetByEmail(email)
}
