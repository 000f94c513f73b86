package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do ferrastock.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL   string
	DBDriver      string        // "postgres" (lib/pq) ou "pgx"
	DBTimeout     time.Duration // teto de cada operação/transação
	DBLockTimeout time.Duration // espera máxima pelo bloqueio de linha de um item

	// Cache (Redis)
	RedisAddr string // vazio desativa o cache
	CacheTTL  time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Dashboard
	RecentMovementsLimit int

	// Administrador inicial (opcional)
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env (se existir) já foi carregado pelo godotenv em main.go.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBDriver:      v.GetString("DB_DRIVER"),
		DBTimeout:     time.Duration(v.GetInt("DB_TIMEOUT_SEC")) * time.Second,
		DBLockTimeout: time.Duration(v.GetInt("DB_LOCK_TIMEOUT_MS")) * time.Millisecond,

		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  time.Duration(v.GetInt("CACHE_TTL_SEC")) * time.Second,

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute,

		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(v.GetInt("RATE_LIMIT_PERIOD_MIN")) * time.Minute,

		RecentMovementsLimit: v.GetInt("RECENT_MOVEMENTS_LIMIT"),

		AdminName:     v.GetString("ADMIN_NAME"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_TIMEOUT_SEC", 5)
	v.SetDefault("DB_LOCK_TIMEOUT_MS", 3000)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL_SEC", 300)
	v.SetDefault("JWT_EXPIRY_MIN", 60)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)
	v.SetDefault("RECENT_MOVEMENTS_LIMIT", 5)
	v.SetDefault("ADMIN_NAME", "Administrador")
}

// validate garante que a aplicação não inicie sem credenciais obrigatórias.
func (c *Config) validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL deve ser definida"))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY deve ser definida"))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, fmt.Errorf("DB_TIMEOUT_SEC inválido: %s", c.DBTimeout))
	}
	if c.DBLockTimeout <= 0 || c.DBLockTimeout >= c.DBTimeout {
		errs = append(errs, fmt.Errorf("DB_LOCK_TIMEOUT_MS deve ser positivo e menor que DB_TIMEOUT_SEC (%s)", c.DBLockTimeout))
	}
	if c.RecentMovementsLimit <= 0 {
		errs = append(errs, errors.New("RECENT_MOVEMENTS_LIMIT deve ser positivo"))
	}
	return errors.Join(errs...)
}
