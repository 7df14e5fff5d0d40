package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

type ollamaProvider struct {
	client *api.Client
	model  string
}

func newOllama(host, model string) (*ollamaProvider, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &ollamaProvider{
		client: api.NewClient(base, &http.Client{Timeout: 5 * time.Minute}),
		model:  model,
	}, nil
}

func (p *ollamaProvider) Complete(ctx context.Context, system, prompt string, opts *CompleteOptions) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  p.model,
		System: system,
		Prompt: prompt,
		Stream: &stream,
	}
	if opts != nil {
		req.Options = map[string]any{"temperature": temperature(opts, 0.7)}
		if opts.MaxTokens > 0 {
			req.Options["num_predict"] = opts.MaxTokens
		}
		if opts.JSON {
			req.Format = json.RawMessage(`"json"`)
		}
	}

	var out strings.Builder
	err := p.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.String(), nil
}
