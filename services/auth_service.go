package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/models"
	"pos-kemasan/repositories"
	"pos-kemasan/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const msgBadCredentials = "Email atau password salah."

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      models.UserProfile `json:"user"`
}

// Claims is the access token payload.
type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	store  *repositories.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(store *repositories.Store, secret string, ttl time.Duration) *AuthService {
	return &AuthService{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Login checks the credentials and issues a signed HS256 token. Unknown email
// and wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = utils.NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			logger.FromCtx(ctx).Info("login failed", "email", in.Email, "reason", "unknown email")
			return nil, apperr.Auth(msgBadCredentials)
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, in.Password) {
		logger.FromCtx(ctx).Info("login failed", "email", in.Email, "reason", "wrong password")
		return nil, apperr.Auth(msgBadCredentials)
	}

	token, expires, err := s.IssueToken(user)
	if err != nil {
		return nil, apperr.Storage("sign token", err)
	}
	logger.FromCtx(ctx).Info("login success", "user_id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, ExpiresAt: expires, User: user.Profile()}, nil
}

func (s *AuthService) IssueToken(user *models.User) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return signed, expires, err
}

// ParseToken verifies signature, algorithm and expiry and returns the claims.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, apperr.Auth("Token tidak valid atau sudah kedaluwarsa.")
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, apperr.Auth("Token tidak valid.")
	}
	return claims, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, actor Actor) (*models.UserProfile, error) {
	user, err := s.store.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}
