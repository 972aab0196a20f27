package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/pantrypal/backend/internal/models"
	"github.com/pageza/pantrypal/backend/internal/session"
)

const persistTimeout = 5 * time.Second

// Session message types sent to realtime observers.
const (
	MessageSnapshot = "snapshot"
	MessageChanged  = "changed"
)

// SessionMessage is what observers of a session receive: the full snapshot,
// plus the event that produced it when there was one.
type SessionMessage struct {
	Type     string           `json:"type"`
	Event    *session.Event   `json:"event,omitempty"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// Invalidator drops derived state of a session.
type Invalidator interface {
	Invalidate(ctx context.Context, sessionKey string)
}

// SessionService owns the live sessions of the process. A session is
// hydrated from its stored documents on first use and every committed
// change is written back, invalidates cached rankings and is published.
type SessionService struct {
	db          *gorm.DB
	invalidator Invalidator
	publisher   EventPublisher
	log         *zap.Logger

	mu   sync.Mutex
	live map[string]*session.Session
}

var _ ISessionService = (*SessionService)(nil)

// NewSessionService creates a new SessionService. invalidator and publisher
// may be nil.
func NewSessionService(db *gorm.DB, invalidator Invalidator, publisher EventPublisher, log *zap.Logger) *SessionService {
	return &SessionService{
		db:          db,
		invalidator: invalidator,
		publisher:   publisher,
		log:         log,
		live:        make(map[string]*session.Session),
	}
}

// Get returns the live session for key, loading it if needed. Loading runs
// outside the registry lock; when two callers race on the same key the first
// one to finish wins and the other's copy is discarded.
func (s *SessionService) Get(ctx context.Context, key string) (*session.Session, error) {
	s.mu.Lock()
	sess, ok := s.live[key]
	s.mu.Unlock()
	if ok {
		return sess, nil
	}

	state, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	loaded := session.New(key)
	if err := loaded.Restore(state); err != nil {
		// Unreadable kinds start empty; the readable ones are kept.
		s.log.Error("Skipped unreadable session documents", zap.String("session", key), zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live[key]; ok {
		return sess, nil
	}
	loaded.Subscribe(func(ev session.Event) { s.onEvent(loaded, ev) })
	s.live[key] = loaded
	return loaded, nil
}

// Forget drops a live session. The stored documents are kept.
func (s *SessionService) Forget(key string) {
	s.mu.Lock()
	delete(s.live, key)
	s.mu.Unlock()
}

// Message builds the observer payload for a session. ev is nil for the
// initial snapshot sent on connect.
func (s *SessionService) Message(sess *session.Session, ev *session.Event) SessionMessage {
	msg := SessionMessage{Type: MessageSnapshot, Snapshot: sess.Snapshot()}
	if ev != nil {
		msg.Type = MessageChanged
		msg.Event = ev
	}
	return msg
}

func (s *SessionService) load(ctx context.Context, key string) (session.State, error) {
	var docs []models.SessionDocument
	if err := s.db.WithContext(ctx).Where("session_key = ?", key).Find(&docs).Error; err != nil {
		return session.State{}, fmt.Errorf("failed to load session %s: %w", key, err)
	}

	var st session.State
	for _, d := range docs {
		if d.Revision > st.Revision {
			st.Revision = d.Revision
		}
		switch d.Kind {
		case models.DocumentPantry:
			st.Pantry = []byte(d.Payload)
		case models.DocumentMoods:
			st.Moods = []byte(d.Payload)
		case models.DocumentPlan:
			st.Plan = []byte(d.Payload)
		default:
			s.log.Warn("Ignoring unknown session document", zap.String("session", key), zap.String("kind", d.Kind))
		}
	}
	return st, nil
}

func (s *SessionService) onEvent(sess *session.Session, ev session.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.persist(ctx, sess, ev.Kind); err != nil {
		s.log.Error("Failed to persist session document",
			zap.String("session", ev.SessionKey),
			zap.String("kind", string(ev.Kind)),
			zap.Int64("revision", ev.Revision),
			zap.Error(err))
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, ev.SessionKey)
	}
	if s.publisher != nil {
		s.publisher.Publish(ev.SessionKey, s.Message(sess, &ev))
	}
}

func (s *SessionService) persist(ctx context.Context, sess *session.Session, kind session.EventKind) error {
	payload, revision, err := sess.Document(kind)
	if err != nil {
		return err
	}
	doc := models.SessionDocument{
		SessionKey: sess.Key(),
		Kind:       string(kind),
		Payload:    string(payload),
		Revision:   revision,
		UpdatedAt:  time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}, {Name: "kind"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "revision", "updated_at"}),
	}).Create(&doc).Error
}
