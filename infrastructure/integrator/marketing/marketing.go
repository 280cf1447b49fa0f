package marketing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/domain"
)

const requestTimeout = 30 * time.Second

var ErrNotConfigured = errors.New("el integrador de marketing no está configurado")

// Integrator genera sugerencias de marketing a partir de los segmentos de
// clientes del colmado
type Integrator interface {
	SuggestCampaigns(ctx context.Context, segments []*domain.Segment) (*domain.MarketingSuggestion, error)
}

// completionClient abstrae el cliente de chat para poder probar el integrador
type completionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIIntegrator struct {
	cfg    *config.Config
	client completionClient
}

func New(cfg *config.Config) *OpenAIIntegrator {
	var client completionClient
	if cfg.OpenAI.APIKey != "" {
		client = openai.NewClient(cfg.OpenAI.APIKey)
	}

	return &OpenAIIntegrator{
		cfg:    cfg,
		client: client,
	}
}

// NewWithClient permite inyectar el cliente en las pruebas
func NewWithClient(cfg *config.Config, client completionClient) *OpenAIIntegrator {
	return &OpenAIIntegrator{
		cfg:    cfg,
		client: client,
	}
}

// SuggestCampaigns resume los segmentos en un prompt y pide al modelo ideas de
// promociones en español adaptadas al negocio
func (s *OpenAIIntegrator) SuggestCampaigns(ctx context.Context, segments []*domain.Segment) (*domain.MarketingSuggestion, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("no hay segmentos para analizar")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := buildPrompt(s.cfg.Business.Name, segments)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.OpenAI.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "Eres un asesor de marketing para colmados dominicanos. " +
					"Respondes en español, con ideas concretas y de bajo costo.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		logrus.WithError(err).Error("marketing: error al consultar el modelo")
		return nil, fmt.Errorf("error al consultar el modelo: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("el modelo no devolvió sugerencias")
	}

	return &domain.MarketingSuggestion{
		Content:     resp.Choices[0].Message.Content,
		Model:       resp.Model,
		GeneratedAt: time.Now(),
	}, nil
}

// buildPrompt arma el resumen de segmentos que alimenta al modelo
func buildPrompt(businessName string, segments []*domain.Segment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Negocio: %s.\n", businessName)
	b.WriteString("Segmentos de clientes detectados en el historial de ventas:\n")

	for _, segment := range segments {
		fmt.Fprintf(&b, "- %s: %d ventas, %.1f%% del ingreso, canasta promedio %.2f DOP",
			segment.Name, segment.SalesQuantity, segment.RevenueShare, segment.AverageBasket)
		if len(segment.PeakHours) > 0 {
			fmt.Fprintf(&b, ", horas pico %v", segment.PeakHours)
		}
		if len(segment.TopCategories) > 0 {
			fmt.Fprintf(&b, ", categorías principales: %s", strings.Join(segment.TopCategories, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Sugiere tres promociones concretas, una por segmento relevante, " +
		"con el día y la hora recomendados para cada una.")
	return b.String()
}
