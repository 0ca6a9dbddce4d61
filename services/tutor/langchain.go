// Package tutorsvc streams model replies for the tutor chat from an
// OpenAI-compatible text-generation endpoint.
package tutorsvc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	langopenai "github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/tmahmud/shikkha/core"
	"github.com/tmahmud/shikkha/core/chat"
)

type streamer struct {
	conf core.TutorConfig
}

var _ chat.Streamer = (*streamer)(nil)

func NewStreamer(conf core.TutorConfig) chat.Streamer {
	return &streamer{conf: conf}
}

// Stream forwards the system instruction and transcript to the service and
// relays incremental fragments. A missing or rejected credential comes back
// as a plain error; the session turns it into the fixed apology.
func (s *streamer) Stream(ctx context.Context, system string, turns []chat.Message, onFragment func(string) error) error {
	llm, err := langopenai.New(
		langopenai.WithToken(s.conf.APIKey),
		langopenai.WithModel(s.conf.Model),
		langopenai.WithBaseURL(s.conf.BaseURL),
	)
	if err != nil {
		return errors.Wrap(err, "creating model client")
	}

	content := make([]llms.MessageContent, 0, len(turns)+1)
	content = append(content, llms.TextParts(schema.ChatMessageTypeSystem, system))
	for _, turn := range turns {
		role := schema.ChatMessageTypeHuman
		if turn.Role == chat.RoleModel {
			role = schema.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, turn.Text))
	}

	_, err = llm.GenerateContent(ctx, content,
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			return onFragment(string(chunk))
		}),
	)
	return errors.Wrap(err, "generating reply")
}
