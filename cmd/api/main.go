package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/database/postgres"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/integrator/marketing"
	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/repository"
	"github.com/gonqgg-debug/facturAI-sub006/internal/api"
	"github.com/gonqgg-debug/facturAI-sub006/internal/config"
	"github.com/gonqgg-debug/facturAI-sub006/internal/scheduler"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/accounting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/authenticating"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/inventorying"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/purchasing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/selling"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/taxreporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nivel de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nivel de log configurado en: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	ncfRepo := repository.NewNCFSequenceRepository(pgConn)
	supplierRepo := repository.NewSupplierRepository(pgConn)
	purchaseRepo := repository.NewPurchaseRepository(pgConn)
	journalRepo := repository.NewJournalRepository(pgConn)
	reportRepo := repository.NewDGIIReportRepository(pgConn)
	snapshotRepo := repository.NewInsightSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	seller := selling.NewService(saleRepo, productRepo, ncfRepo, journalRepo)
	inventorier := inventorying.NewService(productRepo)
	purchaser := purchasing.NewService(supplierRepo, purchaseRepo, productRepo, journalRepo)
	accountant := accounting.NewService(journalRepo)
	reporter := taxreporting.NewService(saleRepo, purchaseRepo, reportRepo, cfg.Business.RNC)

	// Servicio de estadísticas con cache de instantáneas precalculadas y la
	// ventana de historial configurada
	insighter := insighting.NewService(saleRepo).
		WithSnapshots(snapshotRepo).
		WithLookback(cfg.SnapshotSync.LookbackDays)

	marketer := marketing.New(cfg)

	// Siembra el catálogo de cuentas mínimo del colmado
	if err := accountant.SeedChartOfAccounts(); err != nil {
		logrus.WithError(err).Error("Error al sembrar el catálogo de cuentas")
	}

	// Siembra las secuencias de NCF con la serie configurada si no existen
	if err := seller.SeedNCFSequences(cfg.Business.NCFSerie); err != nil {
		logrus.WithError(err).Error("Error al sembrar las secuencias de NCF")
	}

	snapshotSyncService := scheduler.NewSnapshotSyncService(insighter, cfg)
	dgiiReportSyncService := scheduler.NewDGIIReportSyncService(reporter, cfg)

	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Error al iniciar el agendador de instantáneas")
	} else {
		logrus.Info("Agendador de instantáneas iniciado con éxito")
	}

	if err := dgiiReportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Error al iniciar el agendador de reportes DGII")
	} else {
		logrus.Info("Agendador de reportes DGII iniciado con éxito")
	}

	server, err := api.New(
		cfg,
		seller,
		inventorier,
		purchaser,
		accountant,
		reporter,
		insighter,
		marketer,
		authenticator,
		snapshotSyncService,
		dgiiReportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura el formato y comportamiento de los logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn crea la conexión con la base de datos
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Error al conectar con PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Error al verificar la conexión con PostgreSQL")
	}

	logrus.Info("Conexión con PostgreSQL establecida con éxito")
	return conn
}
