package site

import (
	"container/list"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/km-arc/go-tourism/forms"
	"github.com/km-arc/go-tourism/framework/logger"
)

// DefaultCookie names the visitor cookie when none is configured.
const DefaultCookie = "visitor"

// DefaultIdleTimeout is how long a visitor's forms survive without requests.
const DefaultIdleTimeout = 30 * time.Minute

// DefaultMaxVisitors caps how many visitors are held at once.
const DefaultMaxVisitors = 10000

type visitorKey struct{}

// VisitorID returns the visitor id stored by Sessions.Middleware.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// SessionOption configures Sessions.
type SessionOption func(*Sessions)

// WithCookieName sets the visitor cookie name.
func WithCookieName(name string) SessionOption {
	return func(s *Sessions) {
		if name != "" {
			s.cookie = name
		}
	}
}

// WithIdleTimeout sets how long an inactive visitor is kept.
func WithIdleTimeout(d time.Duration) SessionOption {
	return func(s *Sessions) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithMaxVisitors caps live visitors. A new visitor beyond the cap evicts
// the least recently seen one.
func WithMaxVisitors(n int) SessionOption {
	return func(s *Sessions) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Sessions) { s.now = now }
}

// WithFormOptions adds options to every FormValidator the store creates.
func WithFormOptions(opts ...forms.Option) SessionOption {
	return func(s *Sessions) { s.formOpts = append(s.formOpts, opts...) }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Sessions) {
		if l != nil {
			s.logger = l
		}
	}
}

type visitor struct {
	id         string
	validators map[string]*forms.FormValidator
	lastSeen   time.Time
}

// Sessions keeps one FormValidator per visitor and form, the server-side
// stand-in for the page a visitor has open.
type Sessions struct {
	registry *forms.Registry
	cookie   string
	idle     time.Duration
	max      int
	now      func() time.Time
	formOpts []forms.Option
	logger   *slog.Logger

	mu       sync.Mutex
	visitors map[string]*list.Element
	recency  *list.List // front is the most recently seen
}

// NewSessions creates an empty store handing out forms from registry.
func NewSessions(registry *forms.Registry, opts ...SessionOption) *Sessions {
	s := &Sessions{
		registry: registry,
		cookie:   DefaultCookie,
		idle:     DefaultIdleTimeout,
		max:      DefaultMaxVisitors,
		now:      time.Now,
		logger:   slog.New(slog.DiscardHandler),
		visitors: make(map[string]*list.Element),
		recency:  list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("sessions"))
	return s
}

// Middleware makes sure every request carries a visitor id, issuing a cookie
// when the request has none or an invalid one.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(s.cookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}

// Validator returns the visitor's validator for formID, creating it on first
// use. Every call counts as visitor activity.
func (s *Sessions) Validator(visitorID, formID string) (*forms.FormValidator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.touch(visitorID)
	if fv, ok := v.validators[formID]; ok {
		return fv, nil
	}

	form, err := s.registry.Get(formID)
	if err != nil {
		return nil, err
	}
	opts := append([]forms.Option{
		forms.WithLogger(s.logger.With(logger.Visitor(visitorID))),
	}, s.formOpts...)
	fv := forms.NewValidator(form, opts...)
	v.validators[formID] = fv
	return fv, nil
}

// Len reports how many visitors are held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recency.Len()
}

// Prune drops visitors idle for longer than the idle timeout and closes
// their validators. It returns the number of visitors dropped.
func (s *Sessions) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idle)
	n := 0
	for e := s.recency.Back(); e != nil; e = s.recency.Back() {
		if e.Value.(*visitor).lastSeen.After(cutoff) {
			break
		}
		s.drop(e)
		n++
	}
	if n > 0 {
		s.logger.Debug("pruned idle visitors", slog.Int("count", n))
	}
	return n
}

// Run prunes on a ticker until ctx is done, then closes every validator.
func (s *Sessions) Run(ctx context.Context) {
	interval := s.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Prune()
		}
	}
}

// Close closes every validator and forgets all visitors.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for e := s.recency.Back(); e != nil; e = s.recency.Back() {
		s.drop(e)
	}
}

// touch returns the visitor, creating it if needed, and marks it as the most
// recently seen. Creating one past the cap evicts the least recently seen.
// mu must be held.
func (s *Sessions) touch(id string) *visitor {
	now := s.now()
	if e, ok := s.visitors[id]; ok {
		v := e.Value.(*visitor)
		v.lastSeen = now
		s.recency.MoveToFront(e)
		return v
	}

	v := &visitor{id: id, validators: make(map[string]*forms.FormValidator), lastSeen: now}
	s.visitors[id] = s.recency.PushFront(v)
	for s.recency.Len() > s.max {
		evicted := s.drop(s.recency.Back())
		s.logger.Warn("visitor limit reached, evicted least recent",
			logger.Visitor(evicted.id), slog.Int("max", s.max))
	}
	return v
}

// drop forgets a visitor and closes its validators. mu must be held.
func (s *Sessions) drop(e *list.Element) *visitor {
	v := s.recency.Remove(e).(*visitor)
	delete(s.visitors, v.id)
	for _, fv := range v.validators {
		fv.Close()
	}
	return v
}
