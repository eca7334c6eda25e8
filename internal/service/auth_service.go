package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL = time.Hour

	usernameMinLen = 4
	usernameMaxLen = 20
	passwordMinLen = 8
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrUsernameLength   = fmt.Errorf("username must be between %d and %d characters long", usernameMinLen, usernameMaxLen)
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", passwordMinLen)
)

// AuthService handles user auth logic. The signing key comes from process
// configuration; main refuses to start without one.
type AuthService struct {
	authRepo   repository.Authorization
	signingKey []byte
	now        func() time.Time
}

func NewAuthService(repo repository.Authorization, signingKey string) *AuthService {
	return &AuthService{
		authRepo:   repo,
		signingKey: []byte(signingKey),
		now:        time.Now,
	}
}

// validateCredentials enforces shape rules before any storage access.
func validateCredentials(username, password string) error {
	if n := len(username); n < usernameMinLen || n > usernameMaxLen {
		return ErrUsernameLength
	}
	if len(password) < passwordMinLen {
		return ErrPasswordTooShort
	}
	return nil
}

// SignUp hashes the password, creates the user, and returns a token for the
// new user id.
func (s *AuthService) SignUp(username, password string) (string, error) {
	if err := validateCredentials(username, password); err != nil {
		return "", err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}
	id, err := s.authRepo.Create(username, hash)
	if err != nil {
		return "", err
	}
	return s.issueToken(id)
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken validates credentials and returns a signed JWT.
func (s *AuthService) GenerateToken(username, password string) (string, error) {
	if err := validateCredentials(username, password); err != nil {
		return "", err
	}
	u, err := s.authRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidPassword
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the embedded user id. Malformed
// encoding, a non-HMAC alg, a bad signature, and expiry all fail the same way.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
