// internal/services/session_service.go
package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketflow-backend/internal/database"
	"github.com/javajoker/marketflow-backend/internal/models"
)

// Workspace event types
const (
	EventSnapshot          = "session.snapshot"
	EventCartUpdated       = "cart.updated"
	EventPurchaseCompleted = "purchase.completed"
	EventRoleChanged       = "role.changed"
	EventReviewAdded       = "review.added"
)

const eventBuffer = 16

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
	At   time.Time   `json:"at"`
}

// EventHub fans workspace events out to subscribers. Publish never blocks;
// a subscriber whose buffer is full misses the event.
type EventHub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a subscriber. The returned func unsubscribes and closes
// the channel; it is safe to call more than once.
func (h *EventHub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, eventBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *EventHub) Publish(eventType string, data interface{}) {
	event := Event{Type: eventType, Data: data, At: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			logrus.WithField("event", eventType).Warn("Dropping workspace event for slow subscriber")
		}
	}
}

func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// SessionSnapshot is what the client needs to render its header and guards.
type SessionSnapshot struct {
	SessionID    string          `json:"session_id"`
	Role         models.AppRole  `json:"role"`
	Identity     models.Identity `json:"identity"`
	CartCount    int             `json:"cart_count"`
	PurchasedIDs []string        `json:"purchased_ids"`
}

// Workspace is the application context of one browser session. Nothing in
// it is shared with other sessions.
type Workspace struct {
	ID         string
	Identity   models.Identity
	Purchases  *PurchaseState
	Reviews    *ReviewLedger
	Directory  *UserDirectory
	Recent     *RecentlyViewed
	Onboarding *Onboarding
	Draft      *DraftState
	Events     *EventHub

	mu       sync.Mutex
	role     models.AppRole
	lastSeen time.Time
}

// NewWorkspace builds a workspace in the seeded demo state.
func NewWorkspace(id string) *Workspace {
	return &Workspace{
		ID:         id,
		Identity:   database.DefaultIdentity,
		Purchases:  NewPurchaseState(database.InitialPurchases),
		Reviews:    NewReviewLedger(database.SeedReviews()),
		Directory:  NewUserDirectory(database.SeedUsers()),
		Recent:     &RecentlyViewed{},
		Onboarding: NewOnboarding(database.OnboardingSteps),
		Draft:      NewDraftState(database.DraftCategories),
		Events:     NewEventHub(),
		role:       models.RoleBuyer,
		lastSeen:   time.Now(),
	}
}

func (w *Workspace) Role() models.AppRole {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.role
}

// SetRole switches the displayed role. Roles are never enforced.
func (w *Workspace) SetRole(role models.AppRole) error {
	if !role.Valid() {
		return ErrInvalidRole
	}

	w.mu.Lock()
	w.role = role
	w.mu.Unlock()

	w.Events.Publish(EventRoleChanged, map[string]interface{}{"role": role})
	return nil
}

func (w *Workspace) AddToCart() int {
	count := w.Purchases.AddToCart()
	w.Events.Publish(EventCartUpdated, map[string]interface{}{"cart_count": count})
	return count
}

// Buy records a simulated purchase. The event is only sent for new purchases.
func (w *Workspace) Buy(productID string) bool {
	added := w.Purchases.Buy(productID)
	if added {
		w.Events.Publish(EventPurchaseCompleted, map[string]interface{}{"product_id": productID})
	}
	return added
}

func (w *Workspace) AddReview(productID string, rating int, comment string) (models.Review, bool) {
	review, ok := w.Reviews.AddReview(productID, rating, comment, w.Identity)
	if ok {
		w.Events.Publish(EventReviewAdded, review)
	}
	return review, ok
}

func (w *Workspace) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		SessionID:    w.ID,
		Role:         w.Role(),
		Identity:     w.Identity,
		CartCount:    w.Purchases.CartCount(),
		PurchasedIDs: w.Purchases.PurchasedIDs(),
	}
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}

// SessionStore owns the workspaces keyed by session id.
type SessionStore struct {
	mu         sync.Mutex
	workspaces map[string]*Workspace
	ttl        time.Duration
	now        func() time.Time
	newID      func() string

	stopOnce sync.Once
	stop     chan struct{}
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		workspaces: make(map[string]*Workspace),
		ttl:        ttl,
		now:        time.Now,
		newID:      uuid.NewString,
		stop:       make(chan struct{}),
	}
}

// Get returns the workspace for id and marks it as seen.
func (s *SessionStore) Get(id string) (*Workspace, bool) {
	s.mu.Lock()
	ws, ok := s.workspaces[id]
	s.mu.Unlock()

	if ok {
		ws.touch(s.now())
	}
	return ws, ok
}

// Create starts a fresh workspace under a new session id.
func (s *SessionStore) Create() *Workspace {
	ws := NewWorkspace(s.newID())
	ws.touch(s.now())

	s.mu.Lock()
	s.workspaces[ws.ID] = ws
	s.mu.Unlock()

	logrus.WithField("session_id", ws.ID).Debug("Workspace created")
	return ws
}

// Resolve returns the workspace for id, creating a new one when id is empty
// or unknown. The second result reports whether a workspace was created.
func (s *SessionStore) Resolve(id string) (*Workspace, bool) {
	if id != "" {
		if ws, ok := s.Get(id); ok {
			return ws, false
		}
	}
	return s.Create(), true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Sweep drops workspaces idle for longer than the TTL and returns how many
// were removed. A non-positive TTL keeps everything.
func (s *SessionStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ws := range s.workspaces {
		if ws.idleSince(now) > s.ttl {
			delete(s.workspaces, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps idle workspaces every interval until Stop.
func (s *SessionStore) StartJanitor(interval time.Duration) {
	if interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := s.Sweep(); removed > 0 {
					logrus.WithFields(logrus.Fields{
						"removed":   removed,
						"remaining": s.Len(),
					}).Info("Swept idle workspaces")
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}
