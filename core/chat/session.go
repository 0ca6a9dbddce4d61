package chat

import (
	"context"
	"strings"
	"sync"
)

// Roles of a transcript turn.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ApologyText is the fixed reply shown when the text-generation service
// fails at any point. It replaces whatever partial content had accumulated.
const ApologyText = "দুঃখিত, আমি এই মুহূর্তে উত্তর দিতে পারছি না। আবার চেষ্টা করুন।"

// Message is one turn of a tutor conversation. Never persisted.
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Streamer delivers one model reply as a sequence of incremental text
// fragments, calling onFragment in arrival order. It returns once the
// stream completes or fails; a non-nil error from onFragment aborts it.
type Streamer interface {
	Stream(ctx context.Context, system string, turns []Message, onFragment func(fragment string) error) error
}

// ApplyFragment folds one incremental fragment into the accumulated reply
// text. The result fully supersedes the previously rendered text.
func ApplyFragment(acc, fragment string) string {
	return acc + fragment
}

// Session holds the transcript of one tutor conversation and streams one
// model reply per submitted user turn. At most one stream is in flight;
// submissions while pending are dropped, not queued.
type Session struct {
	streamer Streamer
	system   string
	onUpdate func([]Message)

	mu         sync.Mutex
	transcript []Message
	pending    bool
}

type SessionOption func(*Session)

// WithUpdateFunc registers a sink notified with a transcript snapshot after
// every visible change (new turn, fragment applied, apology set).
func WithUpdateFunc(fn func([]Message)) SessionOption {
	return func(s *Session) { s.onUpdate = fn }
}

func NewSession(streamer Streamer, system string, opts ...SessionOption) *Session {
	s := &Session{
		streamer: streamer,
		system:   system,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transcript returns a copy of the current transcript.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Pending reports whether a reply is currently being streamed.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Submit appends a user turn and streams the model reply into the slot
// right after it, replacing that slot's text with the accumulated reply on
// every fragment. Empty input and submissions while a reply is pending are
// silent no-ops. Submit returns when the reply is complete or has been
// replaced by the fixed apology; pending is cleared in all cases.
func (s *Session) Submit(ctx context.Context, userText string) {
	userText = strings.TrimSpace(userText)

	s.mu.Lock()
	if userText == "" || s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.transcript = append(s.transcript, Message{Role: RoleUser, Text: userText})
	// reply slot is visible before any fragment arrives
	s.transcript = append(s.transcript, Message{Role: RoleModel, Text: ""})
	turns := s.snapshot()
	turns = turns[:len(turns)-1] // context for the service: all turns up to and including the new user turn
	s.notifyLocked()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	var acc string
	err := s.streamer.Stream(ctx, s.system, turns, func(fragment string) error {
		acc = ApplyFragment(acc, fragment)
		s.setReply(acc)
		return nil
	})
	if err != nil {
		s.setReply(ApologyText)
	}
}

// setReply overwrites the last transcript slot. It never appends; the reply
// for a turn occupies exactly one slot however many fragments arrive.
func (s *Session) setReply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript[len(s.transcript)-1] = Message{Role: RoleModel, Text: text}
	s.notifyLocked()
}

func (s *Session) snapshot() []Message {
	cp := make([]Message, len(s.transcript))
	copy(cp, s.transcript)
	return cp
}

func (s *Session) notifyLocked() {
	if s.onUpdate != nil {
		s.onUpdate(s.snapshot())
	}
}
