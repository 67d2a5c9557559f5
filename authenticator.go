package hostauth

import (
	"context"

	"github.com/google/uuid"
)

// Defaults recorded on a refresh session when no metadata hook is
// configured. Real client capture is an integration concern; see
// WithSessionMetadata.
const (
	DefaultSessionIP          = "user ip"
	DefaultSessionFingerprint = "fingerprint 1"
)

// SessionMetadataFunc supplies the connection metadata recorded on a new
// refresh session.
type SessionMetadataFunc func(ctx context.Context) (ip, fingerprint string)

// LoginResult is returned by Auther.Login on success.
type LoginResult struct {
	UserID       int64  `json:"id"`
	Login        string `json:"login"`
	DisplayName  string `json:"displayName"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Auther orchestrates login: credential verification, token minting, and
// refresh session bookkeeping.
type Auther struct {
	gateway      CredentialGateway
	sessions     *SessionStore
	tokenService TokenService
	cfg          Config
	logger       Logger
	sessionMeta  SessionMetadataFunc
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(gateway CredentialGateway, sessions *SessionStore, cfg Config) *Auther {
	cfg = cfg.WithDefaults()
	return &Auther{
		gateway:      gateway,
		sessions:     sessions,
		tokenService: NewTokenService(cfg, defLogger{}),
		cfg:          cfg,
		logger:       defLogger{},
		sessionMeta: func(context.Context) (string, string) {
			return DefaultSessionIP, DefaultSessionFingerprint
		},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService sets a custom token service, e.g. one with a fixed clock.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// WithSessionMetadata configures how connection metadata is captured for
// new refresh sessions.
func (s *Auther) WithSessionMetadata(fn SessionMetadataFunc) *Auther {
	if fn != nil {
		s.sessionMeta = fn
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the credentials, mints an access token, and records a new
// refresh session. When the session cannot be persisted no token is
// returned: handing out a token the host has no session record for would
// leave the refresh token unverifiable.
func (s *Auther) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	if s.cfg.SigningKey == "" {
		s.logger.Error("Login refused, no signing secret configured")
		return nil, ErrBadSettings
	}

	identity, err := s.gateway.VerifyCredentials(ctx, login, password)
	if err != nil || identity == nil {
		s.logger.Info("Login verify credentials failed", "login", login)
		return nil, ErrBadCredentials
	}

	token, err := s.tokenService.Mint(identity.ID())
	if err != nil {
		s.logger.Error("Login token mint error", "error", err)
		return nil, err
	}

	ip, fingerprint := s.sessionMeta(ctx)
	session := RefreshSession{
		RefreshToken: uuid.NewString(),
		IP:           ip,
		Fingerprint:  fingerprint,
	}

	if err := s.sessions.AppendSession(ctx, identity.ID(), session); err != nil {
		s.logger.Error("Login session persist error", "user_id", identity.ID(), "error", err)
		return nil, err
	}

	return &LoginResult{
		UserID:       identity.ID(),
		Login:        identity.Login(),
		DisplayName:  identity.DisplayName(),
		Token:        token,
		RefreshToken: session.RefreshToken,
	}, nil
}
