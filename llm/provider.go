package llm

import (
	"context"

	"github.com/kbukum/audioviz/provider"
)

// Provider is the interface that LLM backends implement: one completion
// request in, one response out.
type Provider interface {
	provider.RequestResponse[CompletionRequest, CompletionResponse]
}

// Complete sends system + user prompts and returns the text response. It
// accepts any RequestResponse, so middleware-wrapped providers work too.
func Complete(ctx context.Context, p provider.RequestResponse[CompletionRequest, CompletionResponse], system, user string) (string, error) {
	resp, err := p.Execute(ctx, CompletionRequest{
		SystemPrompt: system,
		Messages:     []Message{{Role: RoleUser, Content: user}},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
