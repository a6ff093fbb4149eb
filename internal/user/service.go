package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"laundry-be/internal/apperr"
	"laundry-be/internal/auth"
	"laundry-be/internal/logger"
	"laundry-be/internal/utils"

	"go.uber.org/zap"
)

type TokenGenerator interface {
	Generate(id utils.Identity) (string, error)
}

type Service interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, id utils.Identity) error
	Me(ctx context.Context, userID string) (*User, error)
}

type service struct {
	repo   Repository
	tokens TokenGenerator
	now    func() time.Time
}

func NewService(repo Repository, tokens TokenGenerator) Service {
	return &service{repo: repo, tokens: tokens, now: time.Now}
}

func (s *service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Login"))

	username := strings.TrimSpace(in.Username)
	phone := strings.TrimSpace(in.Phone)

	var (
		u   *User
		err error
	)
	switch {
	case username != "" || in.Password != "":
		if username == "" || in.Password == "" {
			return nil, ErrCredentialsRequired
		}
		u, err = s.repo.FindByUsername(ctx, username)
		if err == nil && (!u.IsActive || !auth.CheckPasswordHash(in.Password, u.Password)) {
			err = apperr.ErrInvalidCredentials
		}
	case phone != "":
		u, err = s.repo.FindCustomerByPhone(ctx, phone)
	default:
		return nil, ErrCredentialsRequired
	}
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) || apperr.Is(err, apperr.KindInvalidCredentials) {
			log.Info("login rejected", zap.String("username", username))
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	identity := utils.Identity{ID: u.ID, Username: u.Username, Role: u.Role, FullName: u.FullName}
	token, err := s.tokens.Generate(identity)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLogin = &now

	// Activity logging never blocks a login.
	err = s.repo.LogActivity(ctx, ActivityLog{
		ID:        utils.NewID("LOG"),
		UserID:    u.ID,
		Action:    "login",
		Details:   fmt.Sprintf("User %s logged in", u.Username),
		CreatedAt: now,
	})
	if err != nil {
		log.Warn("failed to record login activity", zap.String("user_id", u.ID), zap.Error(err))
	}

	log.Info("login succeeded", zap.String("user_id", u.ID), zap.String("role", u.Role))
	return &LoginResult{Token: token, User: u}, nil
}

func (s *service) Logout(ctx context.Context, id utils.Identity) error {
	return s.repo.LogActivity(ctx, ActivityLog{
		ID:        utils.NewID("LOG"),
		UserID:    id.ID,
		Action:    "logout",
		Details:   fmt.Sprintf("User %s logged out", id.Username),
		CreatedAt: s.now(),
	})
}

func (s *service) Me(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}
