package service

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openpolls/polling-api/internal/api/metrics"
	"github.com/openpolls/polling-api/internal/core/domain"
	"github.com/openpolls/polling-api/internal/core/ports"
)

const saltBytes = 32 // 256 bits of salt, hex-encoded to 64 characters

// AuthService implements registration and credential verification.
//
// The stored digest is hex(SHA-512(salt ‖ password)) with no separator, the
// same construction used for every credential row ever written, so existing
// databases keep verifying.
type AuthService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Register creates a new user with a fresh random salt. The duplicate-name
// check is the store's unique constraint; there is no read before the insert.
func (s *AuthService) Register(ctx context.Context, userName, password string) (*domain.User, error) {
	if !domain.ValidUserName(userName) || !domain.ValidPassword(password) {
		return nil, domain.ErrInvalidInput
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &domain.User{
		UserName:     userName,
		Salt:         salt,
		PasswordHash: digest(salt, password),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.ErrDuplicateUser
		}
		s.log.Error().Err(err).Str("username", userName).Msg("failed to create user")
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Str("username", userName).Msg("user registered")

	return user, nil
}

// Authenticate recomputes the digest from the stored salt and compares it to
// the stored hash. An unknown user authenticates as false, not as an error,
// so callers cannot distinguish the two cases.
func (s *AuthService) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	user, err := s.repo.FindByName(ctx, userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return false, nil
		}
		return false, err
	}

	ok := subtle.ConstantTimeCompare([]byte(digest(user.Salt, password)), []byte(user.PasswordHash)) == 1
	if ok {
		metrics.LoginsTotal.WithLabelValues("success").Inc()
	} else {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
	}
	return ok, nil
}

func generateSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// digest computes hex(SHA-512(salt ‖ password)). Concatenation order matters:
// salt first, then password, no delimiter.
func digest(salt, password string) string {
	h := sha512.New()
	h.Write([]byte(salt))
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}
