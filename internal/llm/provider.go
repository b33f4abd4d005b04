package llm

import (
    "context"

    openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface the quiz generator needs to call a chat
// model. It mirrors the CreateChatCompletion method so that any
// OpenAI-compatible backend (hosted or local) can be adapted, and so tests
// can substitute a scripted fake.
type Client interface {
    CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIProvider adapts *openai.Client to the Client interface.
type OpenAIProvider struct {
    Inner *openai.Client
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
    return p.Inner.CreateChatCompletion(ctx, request)
}

// New builds an OpenAI-compatible provider. baseURL overrides the default
// endpoint when pointing at a local or proxy backend; empty keeps the
// library default.
func New(apiKey, baseURL string) *OpenAIProvider {
    cfg := openai.DefaultConfig(apiKey)
    if baseURL != "" {
        cfg.BaseURL = baseURL
    }
    return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}
