package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
	"github.com/taskflow/backend/usecase"
)

type UseCase struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	buffer    usecase.OperationBuffer
	jwtSecret []byte
	jwtIssuer string
	logger    *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, buffer usecase.OperationBuffer, jwtSecret, jwtIssuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:     users,
		sessions:  sessions,
		buffer:    buffer,
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
		logger:    logger,
	}
}

// Login accepts an identity the provider already authenticated, mirrors it
// locally, and opens a session. When the identity mirror cannot be written
// the login still proceeds: the upsert is buffered for replay, since the
// provider, not this service, is the source of truth for the identity.
func (uc *UseCase) Login(ctx context.Context, identity *domain.User, ttl time.Duration) (*domain.Session, string, error) {
	if err := identity.Validate(); err != nil {
		return nil, "", err
	}

	if err := uc.users.Upsert(ctx, identity); err != nil {
		uc.logger.Error("identity mirror write failed", zap.String("user_id", identity.ID), zap.Error(err))
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferProfile(ctx, identity); bufErr != nil {
				uc.logger.Error("failed to buffer identity upsert", zap.Error(bufErr))
			}
		}
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    identity.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := uc.signToken(session)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Logout revokes the session. Revoking an unknown session is not an error.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends an existing session and reissues the bearer token.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (*domain.Session, string, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return nil, "", err
	}
	session.ExpiresAt = time.Now().Add(ttl)

	token, err := uc.signToken(session)
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    session.UserID,
		"session_id": session.ID,
		"iss":        uc.jwtIssuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}
