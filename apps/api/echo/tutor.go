package echoapi

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/chat"
	"github.com/tmahmud/shikkha/core/user"
)

// tutor websocket event types
const (
	tutorEventMessage    = "message"    // client -> server: submit a user turn
	tutorEventTranscript = "transcript" // server -> client: full transcript snapshot
	tutorEventDone       = "done"       // server -> client: reply finished, input unlocked
)

type (
	tutorApi struct {
		usrSvc   *user.Service
		streamer chat.Streamer
		logger   core.Logger
	}

	tutorClientEvent struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	tutorServerEvent struct {
		Type     string         `json:"type"`
		Messages []chat.Message `json:"messages,omitempty"`
	}
)

var tutorUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true }, // auth is JWT, not origin
}

func registerTutorAPI(g *echo.Group, jwt echo.MiddlewareFunc, usrSvc *user.Service, streamer chat.Streamer, logger core.Logger) {
	api := tutorApi{
		usrSvc:   usrSvc,
		streamer: streamer,
		logger:   logger,
	}
	g.GET("/tutor/ws", api.serve, jwt, studentMiddleware())
}

// serve drives one conversation per connection. Every visible transcript
// change is pushed as a full snapshot; the client renders the last model
// slot as it grows. Submissions while a reply is streaming are dropped by
// the session, so a chatty client cannot interleave replies.
func (api *tutorApi) serve(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	conn, err := tutorUpgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "upgrading tutor connection")
	}
	defer conn.Close()

	sink := &tutorSink{conn: conn}
	session := chat.NewSession(
		api.streamer,
		chat.SystemInstruction(usr.Name, usr.ClassName),
		chat.WithUpdateFunc(sink.pushTranscript),
	)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		var ev tutorClientEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				api.logger.Debug("tutor connection dropped", err)
			}
			return nil
		}
		if ev.Type != tutorEventMessage {
			continue
		}

		// stream off the read loop so messages sent mid-reply still reach
		// the session's pending gate instead of queueing on the socket
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			session.Submit(ctx.Request().Context(), text)
			sink.push(tutorServerEvent{Type: tutorEventDone})
		}(ev.Text)
	}
}

// tutorSink serializes writes; gorilla connections allow one writer at a time.
type tutorSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *tutorSink) push(ev tutorServerEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.WriteJSON(ev)
}

func (s *tutorSink) pushTranscript(messages []chat.Message) {
	s.push(tutorServerEvent{Type: tutorEventTranscript, Messages: messages})
}
