package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/activity"
	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or signed with another key.
var ErrInvalidToken = errors.New("invalid token")

type AuthUseCase interface {
	FindByCredentials(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	ParseToken(token string) (domain.Actor, error)
	Logout(ctx context.Context, actor domain.Actor)
}

type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwtlib.RegisteredClaims
}

type Profile struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	FullName string      `json:"full_name"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Profile   `json:"user"`
}

type AuthService struct {
	unit     *repository.Unit
	activity activity.Log
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(unit *repository.Unit, activityLog activity.Log, secret string, ttl time.Duration) *AuthService {
	if activityLog == nil {
		activityLog = activity.Discard
	}
	return &AuthService{
		unit:     unit,
		activity: activityLog,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// FindByCredentials returns the user whose username and password match exactly.
func (s *AuthService) FindByCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	var (
		user  domain.User
		found bool
	)
	err := s.unit.View(ctx, func(tx *repository.Tx) error {
		user, found = tx.UserByUsername(username)
		return nil
	})
	if err != nil {
		activity.RecordError(ctx, s.activity, username, "login", err)
		return nil, err
	}
	if !found || !user.CheckPassword(password) {
		activity.Record(ctx, s.activity, username, activity.LevelFailed, fmt.Sprintf("Login failed for user: %s", username))
		return nil, fmt.Errorf("%w: invalid username or password", domain.ErrUserNotFound)
	}

	activity.Record(ctx, s.activity, username, activity.LevelSuccess, fmt.Sprintf("Login succeeded for user: %s", username))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.FindByCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.issue(*user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User: Profile{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
			FullName: user.FullName,
		},
	}, nil
}

func (s *AuthService) issue(user domain.User) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates an HS256 token and returns the actor it was issued to.
func (s *AuthService) ParseToken(tokenStr string) (domain.Actor, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return domain.Actor{}, ErrInvalidToken
	}
	return domain.Actor{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// Logout only records the event; tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, actor domain.Actor) {
	activity.Record(ctx, s.activity, actor.String(), activity.LevelInfo, fmt.Sprintf("User logout: %s", actor))
}

var _ AuthUseCase = (*AuthService)(nil)
