package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/utils"
)

// Claims carried by admin tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users     repositories.UserStore
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var errBadCredentials = domain.UnauthorizedError{Msg: "Email/username atau password salah"}

// Login checks the password and returns a signed HS256 token.
func (s AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", models.User{}, domain.ValidationError{Field: "username", Msg: "username dan password wajib diisi"}
	}

	u, err := s.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.User{}, errBadCredentials
		}
		return "", models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, errBadCredentials
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", models.User{}, domain.InternalError{Msg: "gagal membuat token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user="+u.Username)
	return signed, u, nil
}

// ParseToken verifies signature, algorithm and expiry.
func (s AuthService) ParseToken(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		msg := "token tidak valid"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "token kedaluwarsa"
		}
		return Claims{}, domain.UnauthorizedError{Msg: msg, Err: err}
	}
	return claims, nil
}
