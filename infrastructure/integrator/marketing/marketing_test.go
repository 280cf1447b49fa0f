package marketing

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

type fakeCompletionClient struct {
	request  openai.ChatCompletionRequest
	response openai.ChatCompletionResponse
	err      error
}

func (f *fakeCompletionClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.request = request
	return f.response, f.err
}

func marketingConfig() *config.Config {
	return &config.Config{
		Business: config.Business{Name: "Colmado Don Ramón"},
		OpenAI:   config.OpenAI{Model: "gpt-4o-mini"},
	}
}

func testSegments() []*domain.Segment {
	return []*domain.Segment{
		{
			Name:          "madrugadores",
			SalesQuantity: 40,
			RevenueShare:  25.5,
			AverageBasket: 150,
			PeakHours:     []int{7, 8},
			TopCategories: []string{"pan", "cafe"},
		},
	}
}

func TestSuggestCampaigns(t *testing.T) {
	client := &fakeCompletionClient{
		response: openai.ChatCompletionResponse{
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "Oferta de café y pan de 7 a 9 de la mañana."}},
			},
		},
	}

	integrator := NewWithClient(marketingConfig(), client)
	suggestion, err := integrator.SuggestCampaigns(context.Background(), testSegments())

	assert.NoError(t, err)
	assert.Equal(t, "Oferta de café y pan de 7 a 9 de la mañana.", suggestion.Content)
	assert.Equal(t, "gpt-4o-mini", suggestion.Model)

	assert.Equal(t, "gpt-4o-mini", client.request.Model)
	assert.Len(t, client.request.Messages, 2)
	assert.Contains(t, client.request.Messages[1].Content, "madrugadores")
	assert.Contains(t, client.request.Messages[1].Content, "Colmado Don Ramón")
}

func TestSuggestCampaigns_ErrorDelModelo(t *testing.T) {
	client := &fakeCompletionClient{err: errors.New("rate limit")}

	integrator := NewWithClient(marketingConfig(), client)
	suggestion, err := integrator.SuggestCampaigns(context.Background(), testSegments())

	assert.Error(t, err)
	assert.Nil(t, suggestion)
}

func TestSuggestCampaigns_SinConfigurar(t *testing.T) {
	integrator := New(marketingConfig())
	suggestion, err := integrator.SuggestCampaigns(context.Background(), testSegments())

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, suggestion)
}

func TestSuggestCampaigns_SinSegmentos(t *testing.T) {
	integrator := NewWithClient(marketingConfig(), &fakeCompletionClient{})
	suggestion, err := integrator.SuggestCampaigns(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, suggestion)
}
