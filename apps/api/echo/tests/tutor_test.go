package tests

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tmahmud/shikkha/core/chat"
	"github.com/tmahmud/shikkha/core/user"
)

type tutorEvent struct {
	Type     string         `json:"type"`
	Messages []chat.Message `json:"messages,omitempty"`
}

func dialTutor(t *testing.T, srv *httptest.Server, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tutor/ws"
	hdr := http.Header{}
	if token != "" {
		hdr.Set("Authorization", "Bearer "+token)
	}
	return websocket.DefaultDialer.Dial(url, hdr)
}

// readUntilDone collects transcript snapshots until the done event.
func readUntilDone(t *testing.T, conn *websocket.Conn) []tutorEvent {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var events []tutorEvent
	for {
		var ev tutorEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("ReadJSON(): %v", err)
		}
		events = append(events, ev)
		if ev.Type == "done" {
			return events
		}
	}
}

func lastTranscript(events []tutorEvent) []chat.Message {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == "transcript" {
			return events[i].Messages
		}
	}
	return nil
}

func Test_tutorApi_serve(t *testing.T) {
	resetStore(t)
	student := createUser(t, "করিম", "101", "p", user.RoleStudent)
	admin := createUser(t, "Boss", "900", "p", user.RoleAdmin)

	srv := httptest.NewServer(app)
	defer srv.Close()

	t.Run("auth required", func(t *testing.T) {
		_, resp, err := dialTutor(t, srv, "")
		if err == nil {
			t.Fatal("dial succeeded without a token")
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %v; want %v", resp.StatusCode, http.StatusUnauthorized)
		}
	})

	t.Run("students only", func(t *testing.T) {
		_, resp, err := dialTutor(t, srv, getToken(t, admin))
		if err == nil {
			t.Fatal("dial succeeded for an admin")
		}
		if resp == nil || resp.StatusCode != http.StatusForbidden {
			t.Errorf("status = %v; want %v", resp.StatusCode, http.StatusForbidden)
		}
	})

	t.Run("fragments grow one reply slot", func(t *testing.T) {
		streamer.Fragments = []string{"আ", "মি", " পারি"}
		streamer.FailAfter = -1

		conn, _, err := dialTutor(t, srv, getToken(t, student))
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		if err = conn.WriteJSON(map[string]string{"type": "message", "text": "তুমি কি পারো?"}); err != nil {
			t.Fatalf("WriteJSON(): %v", err)
		}

		events := readUntilDone(t, conn)
		transcript := lastTranscript(events)
		want := []chat.Message{
			{Role: chat.RoleUser, Text: "তুমি কি পারো?"},
			{Role: chat.RoleModel, Text: "আমি পারি"},
		}
		if len(transcript) != len(want) {
			t.Fatalf("transcript = %+v; want %+v", transcript, want)
		}
		for i := range want {
			if transcript[i] != want[i] {
				t.Errorf("transcript[%d] = %+v; want %+v", i, transcript[i], want[i])
			}
		}

		// the persona carries the student's name
		if !strings.Contains(streamer.LastSystem, "করিম") {
			t.Errorf("system instruction %q does not mention the student", streamer.LastSystem)
		}
	})

	t.Run("failure mid-stream yields the apology", func(t *testing.T) {
		streamer.Fragments = []string{"আ", "মি"}
		streamer.FailAfter = 1

		conn, _, err := dialTutor(t, srv, getToken(t, student))
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		if err = conn.WriteJSON(map[string]string{"type": "message", "text": "হ্যালো"}); err != nil {
			t.Fatalf("WriteJSON(): %v", err)
		}

		events := readUntilDone(t, conn)
		transcript := lastTranscript(events)
		if len(transcript) == 0 {
			t.Fatal("no transcript received")
		}
		last := transcript[len(transcript)-1]
		if last.Role != chat.RoleModel || last.Text != chat.ApologyText {
			t.Errorf("last = %+v; want the apology", last)
		}
	})

	t.Run("each connection is its own conversation", func(t *testing.T) {
		streamer.Fragments = []string{"উত্তর"}
		streamer.FailAfter = -1

		conn, _, err := dialTutor(t, srv, getToken(t, student))
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer conn.Close()

		if err = conn.WriteJSON(map[string]string{"type": "message", "text": "নতুন প্রশ্ন"}); err != nil {
			t.Fatalf("WriteJSON(): %v", err)
		}
		events := readUntilDone(t, conn)
		transcript := lastTranscript(events)
		// no turns leaked from earlier connections
		if len(transcript) != 2 {
			t.Errorf("transcript = %+v; want exactly one exchange", transcript)
		}
	})
}
