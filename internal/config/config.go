package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SalesSourceFile     = "file"
	SalesSourcePostgres = "postgres"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	SalesSource     SalesSource     `mapstructure:",squash"`
	SalesImportSync SalesImportSync `mapstructure:",squash"`
	Analytics       Analytics       `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Cors            Cors            `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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

// SalesSource define de onde o painel lê os registros de venda
type SalesSource struct {
	Kind     string `mapstructure:"sales_source"`    // file ou postgres
	FilePath string `mapstructure:"sales_file_path"` // csv ou xlsx local
	URL      string `mapstructure:"sales_file_url"`  // arquivo remoto, tem precedência sobre o caminho local
	Strict   bool   `mapstructure:"sales_strict_parse"`
}

type SalesImportSync struct {
	CronSchedule string `mapstructure:"sales_import_sync_cron"`
	Enabled      bool   `mapstructure:"sales_import_sync_enabled"`
}

type Analytics struct {
	DecompositionPeriod int `mapstructure:"analytics_decomposition_period"`
	AcfMaxLag           int `mapstructure:"analytics_acf_max_lag"`
	ForecastWindow      int `mapstructure:"analytics_forecast_window"`
	RankingSize         int `mapstructure:"analytics_ranking_size"`
}

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	APIKeyHash    string        `mapstructure:"auth_api_key_hash"`    // bcrypt da chave com perfil admin
	ViewerKeyHash string        `mapstructure:"auth_viewer_key_hash"` // bcrypt da chave somente leitura
	TokenTTL      time.Duration `mapstructure:"auth_token_ttl"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SALES_SOURCE", SalesSourceFile)
	viper.SetDefault("SALES_FILE_PATH", "train.csv")
	viper.SetDefault("SALES_FILE_URL", "")
	viper.SetDefault("SALES_STRICT_PARSE", false)

	viper.SetDefault("SALES_IMPORT_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("SALES_IMPORT_SYNC_ENABLED", false)

	viper.SetDefault("ANALYTICS_DECOMPOSITION_PERIOD", 12) // sazonalidade anual em série mensal
	viper.SetDefault("ANALYTICS_ACF_MAX_LAG", 12)
	viper.SetDefault("ANALYTICS_FORECAST_WINDOW", 10)
	viper.SetDefault("ANALYTICS_RANKING_SIZE", 10)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_API_KEY_HASH", "")
	viper.SetDefault("AUTH_VIEWER_KEY_HASH", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8501")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	if err := config.Validate(); err != nil {
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

// Validate verifica combinações inválidas antes de subir os serviços
func (c *Config) Validate() error {
	switch c.SalesSource.Kind {
	case SalesSourceFile:
		if c.SalesSource.FilePath == "" && c.SalesSource.URL == "" {
			return fmt.Errorf("config: SALES_FILE_PATH ou SALES_FILE_URL é obrigatório para a fonte %q", SalesSourceFile)
		}
	case SalesSourcePostgres:
	default:
		return fmt.Errorf("config: fonte de vendas inválida %q (use %s ou %s)", c.SalesSource.Kind, SalesSourceFile, SalesSourcePostgres)
	}

	if c.Analytics.DecompositionPeriod < 2 {
		return fmt.Errorf("config: ANALYTICS_DECOMPOSITION_PERIOD deve ser ao menos 2, recebeu %d", c.Analytics.DecompositionPeriod)
	}
	if c.Analytics.ForecastWindow < 2 {
		return fmt.Errorf("config: ANALYTICS_FORECAST_WINDOW deve ser ao menos 2, recebeu %d", c.Analytics.ForecastWindow)
	}
	if c.Analytics.RankingSize < 1 {
		return fmt.Errorf("config: ANALYTICS_RANKING_SIZE deve ser positivo, recebeu %d", c.Analytics.RankingSize)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
