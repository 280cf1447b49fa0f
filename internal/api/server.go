package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/integrator/marketing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/api/handler"
	"github.com/gonqgg-debug/facturAI-sub006/internal/api/handler/router"
	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/scheduler"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/accounting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/authenticating"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/inventorying"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/purchasing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/selling"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/taxreporting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	seller selling.Seller,
	inventorier inventorying.Inventorier,
	purchaser purchasing.Purchaser,
	accountant accounting.Accountant,
	reporter taxreporting.Reporter,
	insighter insighting.Insighter,
	marketer marketing.Integrator,
	authenticator authenticating.Authenticator,
	snapshotSyncService *scheduler.SnapshotSyncService,
	dgiiReportSyncService *scheduler.DGIIReportSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		SnapshotSyncService:   snapshotSyncService,
		DGIIReportSyncService: dgiiReportSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Sales(seller)...),
		router.WithRoutes(handler.Products(inventorier)...),
		router.WithRoutes(handler.Purchases(purchaser)...),
		router.WithRoutes(handler.Accounting(accountant)...),
		router.WithRoutes(handler.TaxReports(reporter)...),
		router.WithRoutes(handler.Insights(insighter)...),
		router.WithRoutes(handler.Marketing(insighter, marketer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Error durante la ejecución del servidor")
		}
	}()

	// Canal para esperar las señales de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Señal de interrupción recibida")
	case <-ctx.Done():
		logrus.Info("Contexto de la aplicación cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando el apagado ordenado del servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error durante el apagado del servidor")
		return err
	}

	logrus.Info("Servidor apagado con éxito")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP apagado con éxito")
	return nil
}
