package hostauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenService mints and validates the signed access tokens.
type TokenService interface {
	Mint(userID int64) (string, error)
	Validate(tokenString string) (AuthClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	logger     Logger
	timeFunc   func() time.Time
}

// NewTokenService creates a new TokenService instance
func NewTokenService(cfg Config, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	cfg = cfg.WithDefaults()
	return &TokenServiceImpl{
		signingKey: []byte(cfg.SigningKey),
		ttl:        cfg.TokenTTL,
		issuer:     cfg.Issuer,
		logger:     logger,
		timeFunc:   time.Now,
	}
}

// WithTimeFunc overrides the clock used for minting and validation.
func (ts *TokenServiceImpl) WithTimeFunc(fn func() time.Time) *TokenServiceImpl {
	if fn != nil {
		ts.timeFunc = fn
	}
	return ts
}

// Mint creates a signed access token for the given user id. Issued-at and
// not-before are both set to the current time.
func (ts *TokenServiceImpl) Mint(userID int64) (string, error) {
	if len(ts.signingKey) == 0 {
		return "", ErrBadSettings
	}

	now := ts.timeFunc()
	claims := &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
		Data: TokenData{User: TokenUser{ID: userID}},
	}

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary access claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *AccessClaims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims.
// Failures are one of ErrTokenExpired, ErrTokenNotYetValid,
// ErrTokenSignature, or ErrTokenMalformed. Tokens that are unsigned or
// signed with anything other than HMAC fail closed.
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	if len(ts.signingKey) == 0 {
		return nil, ErrBadSettings
	}

	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	},
		jwt.WithTimeFunc(ts.timeFunc),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		switch {
		case goerrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case goerrors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case goerrors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	if claims, ok := token.Claims.(*AccessClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrTokenMalformed
}
