package app

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/registrysync/internal/config"
	"github.com/agentstation/registrysync/pkg/constants"
	"github.com/agentstation/registrysync/pkg/errors"
	"github.com/agentstation/registrysync/pkg/normalize"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose  bool
	Quiet    bool
	NoColor  bool
	Format   string
	LogLevel string

	// Config file
	ConfigFile string

	// Registry
	RegistryURL      string
	RegistryUser     string
	RegistryPassword string
	RegistrySnapshot string // Offline runs against a YAML snapshot
	PortalURL        string

	// Issue tracker
	Notify          bool
	GithubToken     string
	GithubRepo      string
	GithubAssignees []string

	// Run
	DryRun         bool
	CountryAliases string
	ReportDir      string
	ReportFormat   string
	MetricsFile    string

	// Logging configuration
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (./.registrysync.yaml or ~/.registrysync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".registrysync")
	}
	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		RegistryURL:      config.GetString("registry.url"),
		RegistryUser:     config.GetString("registry.user"),
		RegistryPassword: config.GetString("registry.password"),
		RegistrySnapshot: config.GetString("registry.snapshot"),
		PortalURL:        config.GetString("registry.portal_url"),

		Notify:          viper.GetBool("github.notify"),
		GithubToken:     config.GetString("github.token"),
		GithubRepo:      config.GetString("github.repo"),
		GithubAssignees: config.GetStrings("github.assignees"),

		DryRun:         viper.GetBool("dry_run"),
		CountryAliases: config.GetString("country_aliases"),
		ReportDir:      config.GetString("report.dir"),
		ReportFormat:   config.GetString("report.format"),
		MetricsFile:    config.GetString("metrics.file"),

		LogLevel:  config.GetString("log_level"),
		LogFormat: config.GetString("log_format"),
		LogOutput: config.GetString("log_output"),
	}

	if cfg.PortalURL == "" {
		cfg.PortalURL = constants.DefaultPortalURL
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = constants.DefaultReportDir
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "auto"
	}
	if cfg.LogOutput == "" {
		cfg.LogOutput = "stderr"
	}
	return cfg, nil
}

// UpdateFromFlags updates config values from parsed command flags so that
// flags take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Validate checks the settings a sync run needs.
func (c *Config) Validate() error {
	if c.RegistrySnapshot == "" {
		if _, ok := normalize.ParseURL(c.RegistryURL); !ok {
			return errors.NewConfigError("registry", "registry URL is missing or invalid", nil)
		}
		if c.RegistryUser == "" || c.RegistryPassword == "" {
			return errors.NewConfigError("registry", "registry user and password are required", nil)
		}
	}
	if _, ok := normalize.ParseURL(c.PortalURL); !ok {
		return errors.NewConfigError("registry", "portal URL is invalid", nil)
	}
	if c.Notify && !c.DryRun {
		if c.GithubToken == "" || c.GithubRepo == "" {
			return errors.NewConfigError("github", "token and repository are required to send notifications", nil)
		}
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set win, and .env.local wins over .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
