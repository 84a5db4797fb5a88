package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/snakefangox/knowbase/internal/logging"
	"github.com/snakefangox/knowbase/pkg/interfaces"
)

const (
	// masterKeySecretName is where the signing key lives in the secret store,
	// so sessions survive process restarts.
	masterKeySecretName = "master_key"
	masterKeyBytes      = 32

	accessDeniedCode   = "ACCESS_CODE_REJECTED"
	sessionInvalidCode = "SESSION_INVALID"

	defaultSessionTTL = 24 * time.Hour
)

// Config carries the service's settings.
type Config struct {
	// AccessCode is the single shared secret that gates the site.
	AccessCode string
	// SessionTTL bounds how long an issued session stays valid.
	SessionTTL time.Duration
}

// Service gates access behind a shared code and issues signed session
// tokens once the code checks out.
type Service struct {
	accessCode string
	ttl        time.Duration
	secrets    interfaces.SecretStore
	logger     interfaces.Logger

	mu        sync.Mutex
	masterKey []byte
}

// Option customizes the service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService constructs the auth service.
func NewService(cfg Config, secrets interfaces.SecretStore, opts ...Option) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	s := &Service{
		accessCode: strings.TrimSpace(cfg.AccessCode),
		ttl:        ttl,
		secrets:    secrets,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the submitted access code and returns a signed session
// token on success.
func (s *Service) Login(ctx context.Context, code string) (string, error) {
	submitted := strings.TrimSpace(code)
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(s.accessCode)) != 1 {
		s.logger.Warn("auth.login.rejected")
		return "", goerrors.New("access code rejected", goerrors.CategoryAuth).
			WithTextCode(accessDeniedCode)
	}
	return s.issueToken(ctx)
}

// Verify checks a session token's signature and expiry.
func (s *Service) Verify(ctx context.Context, token string) error {
	key, err := s.signingKey(ctx)
	if err != nil {
		return err
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, goerrors.New("unexpected signing method", goerrors.CategoryAuth)
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return goerrors.New("session token invalid", goerrors.CategoryAuth).
			WithTextCode(sessionInvalidCode)
	}
	return nil
}

func (s *Service) issueToken(ctx context.Context) (string, error) {
	key, err := s.signingKey(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(key)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "sign session token")
	}
	return signed, nil
}

// signingKey loads the persisted master key, generating and storing a fresh
// one when none exists yet.
func (s *Service) signingKey(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.masterKey != nil {
		return s.masterKey, nil
	}

	stored, err := s.secrets.GetSecret(ctx, masterKeySecretName)
	if err != nil {
		return nil, err
	}
	if len(stored) == masterKeyBytes {
		s.masterKey = stored
		return s.masterKey, nil
	}

	key := make([]byte, masterKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "generate master key")
	}
	if err := s.secrets.SetSecret(ctx, masterKeySecretName, key); err != nil {
		return nil, err
	}
	s.logger.Info("auth.master_key.generated")
	s.masterKey = key
	return s.masterKey, nil
}
