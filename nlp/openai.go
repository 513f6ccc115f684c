package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/malecare/trialbot/domain"
)

const intentSystemPrompt = `You classify messages from cancer patients talking to a clinical trial finder.
Reply with exactly one word, the intent of the message: greeting, find_trials, goodbye, or unknown.`

const entitySystemPrompt = `You extract structured fields from messages written by cancer patients.
Reply with a single JSON object with the keys "cancer_type", "location", "age" and "sex".
Use null for any field the message does not mention. Do not add other keys or any prose.`

// ModelClient is the model-backed classifier and extractor. It sends each
// message to a hosted chat-completion model and maps the verdict onto the
// intent enum and entity fields.
type ModelClient struct {
	client *openai.Client
	model  string
}

// NewModelClient constructs a model-backed NLP client. The model name falls
// back to a small default when unset.
func NewModelClient(apiKey, model string) *ModelClient {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &ModelClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Ensure ModelClient implements both capabilities.
var (
	_ IntentClassifier = (*ModelClient)(nil)
	_ EntityExtractor  = (*ModelClient)(nil)
)

// Classify asks the model for an intent label. Confidence thresholds, if any,
// are the model's concern; the label is mapped directly onto the enum.
func (c *ModelClient) Classify(ctx context.Context, text string, _ SessionContext) (domain.Intent, error) {
	reply, err := c.complete(ctx, intentSystemPrompt, text)
	if err != nil {
		return domain.IntentUnknown, err
	}
	return mapIntentLabel(reply), nil
}

// Extract asks the model for a JSON verdict and decodes it into Entities.
func (c *ModelClient) Extract(ctx context.Context, text string) (domain.Entities, error) {
	reply, err := c.complete(ctx, entitySystemPrompt, text)
	if err != nil {
		return domain.Entities{}, err
	}
	return parseEntityReply(reply)
}

func (c *ModelClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// mapIntentLabel maps a model label onto the intent enum. Anything the model
// invents lands on unknown.
func mapIntentLabel(label string) domain.Intent {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "greeting":
		return domain.IntentGreeting
	case "find_trials":
		return domain.IntentFindTrials
	case "goodbye":
		return domain.IntentGoodbye
	default:
		return domain.IntentUnknown
	}
}

// parseEntityReply decodes the model's JSON verdict, tolerating markdown code
// fences and null fields.
func parseEntityReply(reply string) (domain.Entities, error) {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var raw struct {
		CancerType *string `json:"cancer_type"`
		Location   *string `json:"location"`
		Age        any     `json:"age"` // models return numbers or strings
		Sex        *string `json:"sex"`
	}
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return domain.Entities{}, err
	}

	var ents domain.Entities
	if raw.CancerType != nil {
		ents.CancerType = strings.TrimSpace(*raw.CancerType)
	}
	if raw.Location != nil {
		ents.Location = strings.TrimSpace(*raw.Location)
	}
	if raw.Sex != nil {
		ents.Sex = strings.TrimSpace(*raw.Sex)
	}
	switch v := raw.Age.(type) {
	case string:
		ents.Age = strings.TrimSpace(v)
	case json.Number:
		ents.Age = v.String()
	}
	return ents, nil
}
