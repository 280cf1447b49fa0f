package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/integrator/marketing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/apiErrors"
)

// SuggestCampaigns genera sugerencias de promociones a partir de los
// segmentos de clientes del período
func SuggestCampaigns(insighter insighting.Insighter, integrator marketing.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, ok := insightFiltersFromQuery(w, r)
		if !ok {
			return
		}

		segments, err := insighter.GetSegments(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Error al calcular los segmentos", nil)
			return
		}

		suggestion, err := integrator.SuggestCampaigns(r.Context(), segments)
		if err != nil {
			logrus.Error(err)
			if errors.Is(err, marketing.ErrNotConfigured) {
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "El servicio de sugerencias no está configurado", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "Error al generar las sugerencias", nil)
			return
		}

		writeJSON(w, suggestion)
	}
}
