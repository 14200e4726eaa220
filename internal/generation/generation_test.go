package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/emrgen/prd/internal/config"
	"github.com/emrgen/prd/internal/prompt"
	oaoption "github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatApp() prompt.Input {
	return prompt.Input{
		Title:              "Chat App",
		ProjectDescription: "A realtime chat tool",
		TechStack:          []string{"React", "Node.js"},
		Pages:              []prompt.Page{{Name: "Inbox", Functionality: "Lists conversations"}},
	}
}

func TestNewRequest(t *testing.T) {
	req := NewRequest(chatApp())
	assert.Equal(t, prompt.BuildPRDPrompt(chatApp()), req.Prompt)
	assert.Equal(t, prompt.SystemPrompt, req.System)
	assert.Equal(t, "Chat App", req.Input.Title)
}

func TestFailure(t *testing.T) {
	err := fmt.Errorf("create: %w", failure(502, errors.New("bad gateway")))

	assert.ErrorIs(t, err, ErrGenerationFailed)
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, 502, f.StatusCode)
	assert.Contains(t, err.Error(), "status 502")
}

func TestRemote_Generate(t *testing.T) {
	var got prompt.Input
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte("# Project Requirement Document\n"))
	}))
	defer srv.Close()

	text, err := NewRemote(srv.URL, srv.Client()).Generate(context.Background(), NewRequest(chatApp()))
	require.NoError(t, err)
	assert.Equal(t, "# Project Requirement Document\n", text)
	assert.Equal(t, chatApp(), got)
}

func TestRemote_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "rate limited", status: http.StatusTooManyRequests, body: "slow down"},
		{name: "empty body", status: http.StatusOK},
		{name: "blank body", status: http.StatusOK, body: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewRemote(srv.URL, srv.Client()).Generate(context.Background(), NewRequest(chatApp()))
			require.ErrorIs(t, err, ErrGenerationFailed)

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tt.status, f.StatusCode)
		})
	}
}

func TestRemote_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRemote(url, nil).Generate(context.Background(), NewRequest(chatApp()))
	require.ErrorIs(t, err, ErrGenerationFailed)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Zero(t, f.StatusCode)
}

func TestAnthropic_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultAnthropicModel, body["model"])
		assert.EqualValues(t, 4096, body["max_tokens"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-haiku-20240307","content":[{"type":"text","text":"# PRD"},{"type":"text","text":"\nbody"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":2}}`))
	}))
	defer srv.Close()

	g := NewAnthropic("key", "", 0, option.WithBaseURL(srv.URL))
	text, err := g.Generate(context.Background(), NewRequest(chatApp()))
	require.NoError(t, err)
	assert.Equal(t, "# PRD\nbody", text)
}

func TestAnthropic_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`))
	}))
	defer srv.Close()

	g := NewAnthropic("key", "", 0, option.WithBaseURL(srv.URL))
	_, err := g.Generate(context.Background(), NewRequest(chatApp()))
	require.ErrorIs(t, err, ErrGenerationFailed)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, http.StatusServiceUnavailable, f.StatusCode)
}

func TestAnthropic_BlankCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-haiku-20240307","content":[{"type":"text","text":"  \n"},{"type":"text","text":"\t"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":2}}`))
	}))
	defer srv.Close()

	g := NewAnthropic("key", "", 0, option.WithBaseURL(srv.URL))
	_, err := g.Generate(context.Background(), NewRequest(chatApp()))
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, errEmptyCompletion)
}

func TestOpenAI_Generate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "markdown", content: "# PRD\nbody"},
		{name: "blank", content: " \n\n ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/chat/completions", r.URL.Path)

				content, _ := json.Marshal(tt.content)
				w.Header().Set("Content-Type", "application/json")
				_, _ = fmt.Fprintf(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":%s}}]}`, content)
			}))
			defer srv.Close()

			g := NewOpenAI("key", "", 0, oaoption.WithBaseURL(srv.URL))
			text, err := g.Generate(context.Background(), NewRequest(chatApp()))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrGenerationFailed)
				assert.ErrorIs(t, err, errEmptyCompletion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.content, text)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.GenerationConfig
		want    Generator
		wantErr bool
	}{
		{name: "anthropic", cfg: config.GenerationConfig{Provider: "anthropic", AnthropicAPIKey: "k"}, want: &Anthropic{}},
		{name: "anthropic without key", cfg: config.GenerationConfig{Provider: "anthropic"}, wantErr: true},
		{name: "openai", cfg: config.GenerationConfig{Provider: "openai", OpenAIAPIKey: "k"}, want: &OpenAI{}},
		{name: "remote", cfg: config.GenerationConfig{Provider: "remote", Endpoint: "http://localhost:4021/api/prd/generate"}, want: &Remote{}},
		{name: "remote without endpoint", cfg: config.GenerationConfig{Provider: "remote"}, wantErr: true},
		{name: "unknown", cfg: config.GenerationConfig{Provider: "llama"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(&config.Config{Generation: tt.cfg})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, g)
		})
	}
}
