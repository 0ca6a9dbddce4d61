package tutorsvc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core/chat"
)

// StubStreamer replays scripted fragments. FailAfter limits how many
// fragments are emitted before Err is returned; a negative value means
// the whole script plays out.
type StubStreamer struct {
	Fragments []string
	FailAfter int
	Err       error

	// captured on each call for assertions
	LastSystem string
	LastTurns  []chat.Message
}

var _ chat.Streamer = (*StubStreamer)(nil)

func NewStubStreamer(fragments ...string) *StubStreamer {
	return &StubStreamer{Fragments: fragments, FailAfter: -1}
}

func (s *StubStreamer) Stream(_ context.Context, system string, turns []chat.Message, onFragment func(string) error) error {
	s.LastSystem = system
	s.LastTurns = append([]chat.Message(nil), turns...)

	for i, frag := range s.Fragments {
		if s.FailAfter >= 0 && i >= s.FailAfter {
			return s.failErr()
		}
		if err := onFragment(frag); err != nil {
			return err
		}
	}
	if s.FailAfter >= 0 {
		return s.failErr()
	}
	return nil
}

func (s *StubStreamer) failErr() error {
	if s.Err != nil {
		return s.Err
	}
	return errors.New("stream interrupted")
}
