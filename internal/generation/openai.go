package generation

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const DefaultOpenAIModel = string(openai.ChatModelGPT4oMini)

var _ Generator = (*OpenAI)(nil)

type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int64
}

func NewOpenAI(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := openai.NewClient(opts...)

	return &OpenAI{client: &client, model: model, maxTokens: maxTokens}
}

func (o *OpenAI) Generate(ctx context.Context, req *Request) (string, error) {
	logrus.Infof("generating prd with %s", o.model)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(o.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(o.maxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", failure(apiErr.StatusCode, err)
		}
		return "", failure(0, err)
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", failure(0, errEmptyCompletion)
	}

	return completion.Choices[0].Message.Content, nil
}
