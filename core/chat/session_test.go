package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// fakeStreamer replays scripted fragments, optionally failing midway.
type fakeStreamer struct {
	fragments []string
	failAfter int // -1: never fail
	calls     int
	gotSystem string
	gotTurns  []Message
}

func newFakeStreamer(fragments ...string) *fakeStreamer {
	return &fakeStreamer{fragments: fragments, failAfter: -1}
}

func (f *fakeStreamer) Stream(_ context.Context, system string, turns []Message, onFragment func(string) error) error {
	f.calls++
	f.gotSystem = system
	f.gotTurns = append([]Message(nil), turns...)

	for i, frag := range f.fragments {
		if f.failAfter >= 0 && i >= f.failAfter {
			return errors.New("stream interrupted")
		}
		if err := onFragment(frag); err != nil {
			return err
		}
	}
	if f.failAfter >= 0 && f.failAfter >= len(f.fragments) {
		return errors.New("stream interrupted")
	}
	return nil
}

func TestSession_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("fragments accumulate into a single reply slot", func(t *testing.T) {
		streamer := newFakeStreamer("A", "B", "C")
		s := NewSession(streamer, "sys")

		s.Submit(ctx, "hello")

		want := []Message{
			{Role: RoleUser, Text: "hello"},
			{Role: RoleModel, Text: "ABC"},
		}
		assert.Equal(t, want, s.Transcript())
		if s.Pending() {
			t.Error("Pending() = true after Submit returned")
		}
	})

	t.Run("failure mid-stream replaces partial text with the apology", func(t *testing.T) {
		streamer := newFakeStreamer("A", "B", "C")
		streamer.failAfter = 2
		s := NewSession(streamer, "sys")

		s.Submit(ctx, "hello")

		want := []Message{
			{Role: RoleUser, Text: "hello"},
			{Role: RoleModel, Text: ApologyText},
		}
		assert.Equal(t, want, s.Transcript())
		if s.Pending() {
			t.Error("Pending() = true after failed Submit")
		}
	})

	t.Run("immediate failure still yields the apology", func(t *testing.T) {
		streamer := newFakeStreamer()
		streamer.failAfter = 0
		s := NewSession(streamer, "sys")

		s.Submit(ctx, "hello")

		want := []Message{
			{Role: RoleUser, Text: "hello"},
			{Role: RoleModel, Text: ApologyText},
		}
		assert.Equal(t, want, s.Transcript())
	})

	t.Run("blank input is a no-op", func(t *testing.T) {
		streamer := newFakeStreamer("A")
		s := NewSession(streamer, "sys")

		s.Submit(ctx, "   \n\t")

		if streamer.calls != 0 {
			t.Errorf("Stream() called %d times; want 0", streamer.calls)
		}
		assert.Empty(t, s.Transcript())
	})

	t.Run("submission while pending is dropped", func(t *testing.T) {
		inFlight := make(chan struct{})
		release := make(chan struct{})

		blocking := streamFunc(func(ctx context.Context, system string, turns []Message, onFragment func(string) error) error {
			close(inFlight)
			<-release
			return onFragment("done")
		})
		s := NewSession(blocking, "sys")

		done := make(chan struct{})
		go func() {
			s.Submit(ctx, "first")
			close(done)
		}()
		<-inFlight

		if !s.Pending() {
			t.Fatal("Pending() = false while a reply is streaming")
		}
		s.Submit(ctx, "second") // dropped, returns immediately
		close(release)
		<-done

		transcript := s.Transcript()
		assert.Equal(t, []Message{
			{Role: RoleUser, Text: "first"},
			{Role: RoleModel, Text: "done"},
		}, transcript)
	})

	t.Run("streamer sees prior turns plus the new user turn", func(t *testing.T) {
		streamer := newFakeStreamer("প্রথম উত্তর")
		s := NewSession(streamer, "sys")

		s.Submit(ctx, "প্রশ্ন ১")
		s.Submit(ctx, "প্রশ্ন ২")

		want := []Message{
			{Role: RoleUser, Text: "প্রশ্ন ১"},
			{Role: RoleModel, Text: "প্রথম উত্তর"},
			{Role: RoleUser, Text: "প্রশ্ন ২"},
		}
		assert.Equal(t, want, streamer.gotTurns)
		assert.Equal(t, "sys", streamer.gotSystem)
	})

	t.Run("updates fire on every visible change", func(t *testing.T) {
		streamer := newFakeStreamer("A", "B")
		var snapshots [][]Message
		s := NewSession(streamer, "sys", WithUpdateFunc(func(msgs []Message) {
			snapshots = append(snapshots, msgs)
		}))

		s.Submit(ctx, "hi")

		// user turn + empty slot, then one per fragment
		if len(snapshots) != 3 {
			t.Fatalf("got %d snapshots; want 3", len(snapshots))
		}
		first := snapshots[0]
		assert.Equal(t, []Message{
			{Role: RoleUser, Text: "hi"},
			{Role: RoleModel, Text: ""},
		}, first)
		last := snapshots[len(snapshots)-1]
		assert.Equal(t, "AB", last[len(last)-1].Text)
	})
}

// streamFunc adapts a func to the Streamer interface.
type streamFunc func(context.Context, string, []Message, func(string) error) error

func (f streamFunc) Stream(ctx context.Context, system string, turns []Message, onFragment func(string) error) error {
	return f(ctx, system, turns, onFragment)
}

func TestApplyFragment(t *testing.T) {
	tests := []struct {
		name     string
		acc      string
		fragment string
		want     string
	}{
		{name: "empty acc", acc: "", fragment: "A", want: "A"},
		{name: "appends", acc: "AB", fragment: "C", want: "ABC"},
		{name: "empty fragment", acc: "AB", fragment: "", want: "AB"},
		{name: "bengali text", acc: "আমি", fragment: " পারি", want: "আমি পারি"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyFragment(tt.acc, tt.fragment); got != tt.want {
				t.Errorf("ApplyFragment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystemInstruction(t *testing.T) {
	got := SystemInstruction("করিম", "৮")
	assert.Contains(t, got, "করিম")
	assert.Contains(t, got, "class ৮")
	assert.Contains(t, got, TutorName)

	// class defaults to N/A
	got = SystemInstruction("করিম", "")
	assert.Contains(t, got, "class N/A")
}
