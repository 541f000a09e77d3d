package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings holds process-level configuration. Project inputs live in the scenario file.
type Settings struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OutputConfig selects the default report format and destination.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Dir    string `yaml:"dir" mapstructure:"dir"`
}

// EngineConfig tunes the calculation engine.
type EngineConfig struct {
	Workers          int     `yaml:"workers" mapstructure:"workers"`
	IRRGuess         float64 `yaml:"irr_guess" mapstructure:"irr_guess"`
	IRRMaxIterations int     `yaml:"irr_max_iterations" mapstructure:"irr_max_iterations"`
	IRRTolerance     float64 `yaml:"irr_tolerance" mapstructure:"irr_tolerance"`
}

// Load reads settings from an optional capex.yaml and CAPEX_* environment variables.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("capex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CAPEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("output.format", "console")
	v.SetDefault("output.dir", "")
	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.irr_guess", 0.10)
	v.SetDefault("engine.irr_max_iterations", 200)
	v.SetDefault("engine.irr_tolerance", 1e-7)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if s.Engine.Workers < 1 {
		return nil, eris.Errorf("config: engine.workers must be at least 1, got %d", s.Engine.Workers)
	}

	return &s, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
