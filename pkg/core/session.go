package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// Default timings. They are cosmetic: nothing real is awaited.
const (
	DefaultThinkMin      = 1500 * time.Millisecond
	DefaultThinkMax      = 3500 * time.Millisecond
	DefaultLearnDelay    = 2 * time.Second
	DefaultErrorCooldown = 3 * time.Second
)

type sessionConfig struct {
	logger        *slog.Logger
	matcher       Matcher
	thinkMin      time.Duration
	thinkMax      time.Duration
	learnDelay    time.Duration
	errorCooldown time.Duration
	greeting      bool
	now           func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithMatcher replaces the default Resolver.
func WithMatcher(m Matcher) SessionOption {
	return func(c *sessionConfig) {
		c.matcher = m
	}
}

// WithThinkDelay sets the range of the simulated thinking delay.
// Pass the same value twice for a fixed delay, or zeros to disable it.
func WithThinkDelay(lo, hi time.Duration) SessionOption {
	return func(c *sessionConfig) {
		if hi < lo {
			hi = lo
		}
		c.thinkMin, c.thinkMax = lo, hi
	}
}

// WithLearnDelay sets the simulated delay of a knowledge submission.
func WithLearnDelay(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.learnDelay = d
	}
}

// WithErrorCooldown sets how long the session stays in StatusError.
func WithErrorCooldown(d time.Duration) SessionOption {
	return func(c *sessionConfig) {
		c.errorCooldown = d
	}
}

// WithGreeting controls whether a new session opens with the greeting message.
func WithGreeting(enabled bool) SessionOption {
	return func(c *sessionConfig) {
		c.greeting = enabled
	}
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(c *sessionConfig) {
		c.now = now
	}
}

// Session is a conversation with the assistant.
// It owns the ordered message log and the transient status, and allows a
// single query or contribution in flight at a time.
type Session struct {
	id     string
	store  *Store
	cfg    sessionConfig
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	messages []Message
	nextID   int64
	status   Status
	activity string
	busy     bool
	failures int // bumped on every error so stale cooldowns do not revert a newer one
	subs     map[int]chan Event
	nextSub  int
	closed   bool
}

// NewSession creates a session over store.
func NewSession(store *Store, opts ...SessionOption) *Session {
	cfg := sessionConfig{
		thinkMin:      DefaultThinkMin,
		thinkMax:      DefaultThinkMax,
		learnDelay:    DefaultLearnDelay,
		errorCooldown: DefaultErrorCooldown,
		greeting:      true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.matcher == nil {
		cfg.matcher = NewResolver()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:     uuid.NewString(),
		store:  store,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		status: StatusOnline,
		subs:   make(map[int]chan Event),
	}
	s.logger = cfg.logger.With("session", s.id)

	if cfg.greeting {
		s.append(Message{Sender: SenderAssistant, Text: GreetingText})
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Store returns the knowledge store backing the session.
func (s *Session) Store() *Store {
	return s.store
}

// SubmitQuery appends the user's message, waits the thinking delay and
// appends the assistant's reply, which is also returned.
//
// Blank input returns ErrEmptyInput and changes nothing. If reply synthesis
// fails, the generic error message is appended and returned together with
// an error wrapping ErrReplyFailed; the session shows StatusError for the
// cooldown period. Cancelling ctx during the delay drops the reply.
func (s *Session) SubmitQuery(ctx context.Context, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyInput
	}
	if err := s.acquire(); err != nil {
		return Message{}, err
	}
	defer s.release()

	s.append(Message{Sender: SenderUser, Text: text})
	s.setStatus(StatusProcessing, ThinkingLines[rand.IntN(len(ThinkingLines))])

	if err := sleep(ctx, s.thinkDelay()); err != nil {
		s.setStatus(StatusOnline, "")
		return Message{}, err
	}

	m, err := s.reply(text)
	if err != nil {
		s.logger.Error("reply synthesis failed", "query", text, "error", err)
		return s.fail(fmt.Errorf("%w: %w", ErrReplyFailed, err))
	}

	msg := s.append(Message{
		Sender:          SenderAssistant,
		Text:            m.Entry.Text,
		URL:             m.Entry.URL,
		Title:           m.Entry.Title,
		Personality:     m.Entry.Personality,
		UserContributed: m.UserContributed(),
	})
	s.logger.Debug("query answered", "key", m.Key, "source", m.Source)
	s.setStatus(StatusOnline, "")
	return msg, nil
}

// SubmitKnowledge stores a contribution in the knowledge store and appends
// a confirmation message, which is also returned.
//
// A contribution without topic or description returns an error wrapping
// ErrInvalidContribution and changes nothing. If the store cannot persist
// the contribution it is not kept, and the error message is appended.
func (s *Session) SubmitKnowledge(ctx context.Context, c Contribution) (Message, error) {
	if err := c.Validate(); err != nil {
		return Message{}, err
	}
	if err := s.acquire(); err != nil {
		return Message{}, err
	}
	defer s.release()

	s.setStatus(StatusLearning, LearningActivity)

	if err := sleep(ctx, s.cfg.learnDelay); err != nil {
		s.setStatus(StatusOnline, "")
		return Message{}, err
	}

	if err := s.store.Upsert(ctx, c.Key(), c.Entry()); err != nil {
		s.logger.Error("knowledge integration failed", "topic", c.Key(), "error", err)
		return s.fail(err)
	}

	msg := s.append(Message{
		Sender:      SenderAssistant,
		Text:        confirmationText(c.Topic, s.store.Len(), s.cfg.now()),
		Personality: confirmationPersonality,
	})
	s.logger.Info("knowledge integrated", "topic", c.Key(), "entries", s.store.Len())
	s.setStatus(StatusOnline, "")
	return msg, nil
}

// reply resolves query, turning a panic in the matcher into an error.
func (s *Session) reply(query string) (m Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	var ok bool
	s.store.View(func(k *Knowledge) {
		m, ok = s.cfg.matcher.Resolve(query, k)
	})
	if !ok {
		m = Match{
			Key:    NormalizeKey(query),
			Entry:  Fallback(query, s.store.Len()),
			Source: SourceFallback,
		}
	}
	return m, nil
}

// fail appends the error message, enters StatusError and schedules the
// return to StatusOnline.
func (s *Session) fail(cause error) (Message, error) {
	msg := s.append(Message{Sender: SenderAssistant, Text: ErrorText})

	s.mu.Lock()
	s.failures++
	gen := s.failures
	s.mu.Unlock()
	s.setStatus(StatusError, "")

	if s.cfg.errorCooldown <= 0 {
		s.clearError(gen)
		return msg, cause
	}

	lifecycle.Go(s.ctx, func(ctx context.Context) error {
		if err := sleep(ctx, s.cfg.errorCooldown); err != nil {
			return nil
		}
		s.clearError(gen)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("error cooldown failed", "error", err)
	}))
	return msg, cause
}

// clearError returns to StatusOnline unless a newer operation changed the status.
func (s *Session) clearError(gen int) {
	s.mu.Lock()
	stale := gen != s.failures || s.status != StatusError
	s.mu.Unlock()
	if !stale {
		s.setStatus(StatusOnline, "")
	}
}

func (s *Session) thinkDelay() time.Duration {
	spread := s.cfg.thinkMax - s.cfg.thinkMin
	if spread <= 0 {
		return s.cfg.thinkMin
	}
	return s.cfg.thinkMin + rand.N(spread)
}

func (s *Session) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("session %s is closed", s.id)
	}
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) append(m Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	m.ID = s.nextID
	if m.Timestamp.IsZero() {
		m.Timestamp = s.cfg.now()
	}
	s.messages = append(s.messages, m)

	msg := m
	s.publish(Event{Type: EventMessage, Message: &msg, Timestamp: m.Timestamp.Unix()})
	return m
}

func (s *Session) setStatus(st Status, activity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.status != st
	s.status = st
	s.activity = activity
	if changed {
		s.logger.Debug("status changed", "status", st)
		s.publish(Event{Type: EventStatus, Status: st, Timestamp: s.cfg.now().Unix()})
	}
}

// publish delivers e to every subscriber without blocking.
// Caller holds s.mu.
func (s *Session) publish(e Event) {
	if s.closed {
		return
	}
	for id, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Debug("dropping event for slow subscriber", "subscriber", id, "event", e.String())
		}
	}
}

// Subscribe returns a channel receiving session events in order, and a
// function that cancels the subscription. Events are dropped for a
// subscriber whose buffer is full.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 100
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}
}

// Close stops background timers and closes every subscription.
func (s *Session) Close() error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	return nil
}

// Messages returns a copy of the conversation log.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Status returns the current status.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Activity returns the line describing what the session is doing,
// or "" when idle.
func (s *Session) Activity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activity
}

// Busy reports whether a query or contribution is in flight.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// KnowledgeCount returns the number of user-contributed entries.
func (s *Session) KnowledgeCount() int {
	return s.store.Len()
}

// Suggestions returns the built-in suggested queries followed by up to
// four user topics.
func (s *Session) Suggestions() []string {
	out := append([]string(nil), SuggestedQueries...)
	keys := s.store.Keys()
	if len(keys) > 4 {
		keys = keys[:4]
	}
	return append(out, keys...)
}

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
