package config

import (
	"fmt"

	apperrors "customer-intake-portal/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Employee directory backends
const (
	EmployeeDirectoryDatabase = "database"
	EmployeeDirectoryLDAP     = "ldap"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`

	// Intake workflow configuration
	IntakeAdminName      string `mapstructure:"INTAKE_ADMIN_NAME" validate:"required,max=200"`
	IntakeAdminEmail     string `mapstructure:"INTAKE_ADMIN_EMAIL" validate:"required,email"`
	IntakeSenderIdentity string `mapstructure:"INTAKE_SENDER_IDENTITY" validate:"required"`

	// SMTP configuration
	SMTPEnabled   bool   `mapstructure:"SMTP_ENABLED"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`
	SMTPUsername  string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword  string `mapstructure:"SMTP_PASSWORD"`
	SMTPTLSPolicy string `mapstructure:"SMTP_TLS_POLICY" validate:"oneof=mandatory opportunistic none"`

	// Employee directory configuration
	EmployeeDirectory string `mapstructure:"EMPLOYEE_DIRECTORY" validate:"oneof=database ldap"`

	// LDAP configuration
	LDAPHost               string `mapstructure:"LDAP_HOST"`
	LDAPPort               string `mapstructure:"LDAP_PORT"`
	LDAPBindDN             string `mapstructure:"LDAP_BIND_DN"`
	LDAPBindPW             string `mapstructure:"LDAP_BIND_PW"`
	LDAPBaseDN             string `mapstructure:"LDAP_BASE_DN"`
	LDAPInsecureSkipVerify bool   `mapstructure:"LDAP_INSECURE_SKIP_VERIFY"`
	LDAPTimeoutSec         int    `mapstructure:"LDAP_TIMEOUT_SEC"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "customer_intake")
	viper.SetDefault("DB_SSL_MODE", "disable")

	// Intake defaults
	viper.SetDefault("INTAKE_ADMIN_NAME", "Intake Administrator")
	viper.SetDefault("INTAKE_ADMIN_EMAIL", "admin@example.com")
	viper.SetDefault("INTAKE_SENDER_IDENTITY", "Customer Intake <noreply@example.com>")

	// SMTP defaults - disabled means notifications are only logged
	viper.SetDefault("SMTP_ENABLED", false)
	viper.SetDefault("SMTP_HOST", "smtp.example.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_TLS_POLICY", "mandatory")

	viper.SetDefault("EMPLOYEE_DIRECTORY", EmployeeDirectoryDatabase)

	// LDAP defaults
	viper.SetDefault("LDAP_HOST", "")
	viper.SetDefault("LDAP_PORT", "636")
	viper.SetDefault("LDAP_BIND_DN", "")
	viper.SetDefault("LDAP_BIND_PW", "")
	viper.SetDefault("LDAP_BASE_DN", "")
	viper.SetDefault("LDAP_INSECURE_SKIP_VERIFY", false)
	viper.SetDefault("LDAP_TIMEOUT_SEC", 10)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return err
	}

	if config.IsProduction() && !config.SMTPEnabled {
		return apperrors.NewConfigurationError("SMTP_ENABLED must be true in production")
	}

	if config.EmployeeDirectory == EmployeeDirectoryLDAP {
		if config.LDAPHost == "" || config.LDAPBaseDN == "" {
			return apperrors.ErrLDAPConfigMissing
		}
	}

	return nil
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
