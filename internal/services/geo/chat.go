package geo

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"siteaudit/internal/ports"
)

// geminiBaseURL is the OpenAI-compatible endpoint of the Generative
// Language API, which lets the official openai-go SDK talk to Gemini.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiChat implements ports.ChatClient against the Gemini API.
type GeminiChat struct {
	model string
	opts  []option.RequestOption
}

var _ ports.ChatClient = (*GeminiChat)(nil)

func NewGeminiChat(apiKey string) (*GeminiChat, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key missing")
	}
	return &GeminiChat{
		model: defaultGeminiModel,
		opts: []option.RequestOption{
			option.WithAPIKey(apiKey),
			option.WithBaseURL(geminiBaseURL),
		},
	}, nil
}

func (g *GeminiChat) Platform() string { return "gemini" }

func (g *GeminiChat) Ask(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(g.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("gemini: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ScriptedChat is a deterministic stand-in for a chat platform. It answers
// brand and best-of prompts with plausible ranked lists so the extraction
// pipeline has something to chew on. Used for the chatgpt platform (whose
// scraper backend is not wired) and for gemini when no key is configured.
type ScriptedChat struct {
	platform string
}

var _ ports.ChatClient = ScriptedChat{}

func NewScriptedChat(platform string) ScriptedChat {
	return ScriptedChat{platform: platform}
}

func (s ScriptedChat) Platform() string { return s.platform }

func (s ScriptedChat) Ask(_ context.Context, prompt string) (string, error) {
	return scriptedResponse(prompt), nil
}
