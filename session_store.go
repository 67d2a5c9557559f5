package hostauth

import (
	"context"
	"encoding/json"

	goerrors "github.com/goliatone/go-errors"
)

// SessionAttributeKey is the host user attribute the refresh session list
// is persisted under.
const SessionAttributeKey = "jwt_refresh_sessions"

// RefreshSession records a refresh token issued at login. Sessions are
// immutable once created and the per-user list only ever grows; revocation
// and pruning are host concerns this layer does not implement.
type RefreshSession struct {
	RefreshToken string `json:"refresh_token"`
	IP           string `json:"ip"`
	Fingerprint  string `json:"fingerprint"`
}

// SessionStore keeps each user's refresh sessions as a single attribute on
// the host user record.
//
// AppendSession is a read-modify-write over that attribute with no locking:
// two concurrent logins for the same user can race and the last write wins.
// The write itself is all-or-nothing at the host store, so a failed persist
// leaves the previously stored list intact.
type SessionStore struct {
	attrs  UserAttributeStore
	logger Logger
}

// NewSessionStore creates a session store backed by the given host
// attribute store.
func NewSessionStore(attrs UserAttributeStore) *SessionStore {
	return &SessionStore{
		attrs:  attrs,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the store.
func (s *SessionStore) WithLogger(logger Logger) *SessionStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// LoadSessions returns the user's refresh sessions. An absent, non-list, or
// otherwise malformed attribute yields an empty list, never an error.
func (s *SessionStore) LoadSessions(ctx context.Context, userID int64) []RefreshSession {
	raw, err := s.attrs.GetAttribute(ctx, userID, SessionAttributeKey)
	if err != nil {
		s.logger.Warn("session list read failed, treating as empty", "user_id", userID, "error", err)
		return []RefreshSession{}
	}

	return decodeSessionList(raw)
}

// AppendSession loads the current list, appends the new session, and
// persists the whole list back. A persist failure is fatal to the caller's
// login attempt.
func (s *SessionStore) AppendSession(ctx context.Context, userID int64, session RefreshSession) error {
	sessions := s.LoadSessions(ctx, userID)
	sessions = append(sessions, session)

	if err := s.attrs.SetAttribute(ctx, userID, SessionAttributeKey, sessions); err != nil {
		return goerrors.Wrap(err, ErrSessionPersist.Category, ErrSessionPersist.Message).
			WithTextCode(ErrSessionPersist.TextCode)
	}

	return nil
}

// decodeSessionList coerces whatever the host attribute store hands back
// into a session slice. Host stores differ in how they round-trip values
// (typed slices, generic JSON maps, raw bytes), so every shape is accepted
// and anything unrecognizable degrades to an empty list.
func decodeSessionList(raw any) []RefreshSession {
	switch v := raw.(type) {
	case nil:
		return []RefreshSession{}
	case []RefreshSession:
		return append([]RefreshSession{}, v...)
	case []byte:
		return decodeSessionJSON(v)
	case string:
		return decodeSessionJSON([]byte(v))
	case json.RawMessage:
		return decodeSessionJSON(v)
	case []any:
		buf, err := json.Marshal(v)
		if err != nil {
			return []RefreshSession{}
		}
		return decodeSessionJSON(buf)
	default:
		return []RefreshSession{}
	}
}

func decodeSessionJSON(buf []byte) []RefreshSession {
	sessions := []RefreshSession{}
	if err := json.Unmarshal(buf, &sessions); err != nil {
		return []RefreshSession{}
	}
	return sessions
}
