package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
	Business       Business       `mapstructure:",squash"`
	OpenAI         OpenAI         `mapstructure:",squash"`
	SnapshotSync   SnapshotSync   `mapstructure:",squash"`
	DGIIReportSync DGIIReportSync `mapstructure:",squash"`
	SecretKey      string         `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Business agrupa los datos fiscales del negocio: el RNC del contribuyente y
// las series de NCF autorizadas por la DGII
type Business struct {
	RNC      string `mapstructure:"business_rnc"`
	Name     string `mapstructure:"business_name"`
	NCFSerie string `mapstructure:"ncf_serie"`
}

type OpenAI struct {
	APIKey string `mapstructure:"openai_api_key"`
	Model  string `mapstructure:"openai_model"`
}

// SnapshotSync configura el job diario que materializa el snapshot de insights
type SnapshotSync struct {
	CronSchedule string `mapstructure:"snapshot_sync_cron"`
	LookbackDays int    `mapstructure:"snapshot_sync_lookback_days"`
	Enabled      bool   `mapstructure:"snapshot_sync_enabled"`
}

// DGIIReportSync configura el job mensual que materializa los reportes 606/607
type DGIIReportSync struct {
	CronSchedule string `mapstructure:"dgii_report_sync_cron"`
	Enabled      bool   `mapstructure:"dgii_report_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/colmado")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("BUSINESS_RNC", "000000000")
	viper.SetDefault("BUSINESS_NAME", "Colmado")
	viper.SetDefault("NCF_SERIE", "B")

	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Defaults de los jobs de sincronización
	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 3 * * *") // Todos los días a las 3 de la madrugada
	viper.SetDefault("SNAPSHOT_SYNC_LOOKBACK_DAYS", 90)
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("DGII_REPORT_SYNC_CRON", "0 5 1 * *") // El primer día de cada mes a las 5
	viper.SetDefault("DGII_REPORT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primero cargar el archivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variables cargadas por godotenv (viper no pudo leer .env):", err)
	} else {
		logrus.Info("Archivo .env leído por Viper con éxito")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Función auxiliar para cargar el archivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("No se pudo obtener el directorio actual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Archivo .env cargado con éxito de:", location)
			return
		}
	}

	logrus.Warn("No se pudo cargar el archivo .env de ninguna localización conocida")
}
