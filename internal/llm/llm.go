// Package llm abstracts the external model call behind a single Invoke. The
// pipeline core never touches the network; everything about timeouts and
// transport lives here.
package llm

import (
	"context"
	"fmt"

	"inquest/internal/config"
)

// Client invokes a model with a system prompt and a user prompt and returns
// the raw generated text.
type Client interface {
	Invoke(ctx context.Context, system, user string) (string, error)
	Name() string
}

// New builds the configured client.
func New(cfg config.Extract) (Client, error) {
	switch cfg.Client {
	case "dummy", "":
		return Dummy{Model: cfg.Model}, nil
	case "openai":
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("llm: unknown client %q", cfg.Client)
	}
}

// Dummy is a stand-in client that always answers "1.0". Useful for wiring
// checks and pipeline dry runs.
type Dummy struct {
	Model string
	Reply string
}

func (d Dummy) Invoke(_ context.Context, _, _ string) (string, error) {
	if d.Reply != "" {
		return d.Reply, nil
	}
	return "1.0", nil
}

func (d Dummy) Name() string {
	if d.Model != "" {
		return d.Model
	}
	return "dummy"
}
