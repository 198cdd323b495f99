package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SCHOOLHELPER_ROUND_QUESTIONS.
const EnvPrefix = "SCHOOLHELPER"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"` // local, production
	DB      DB      `mapstructure:"db"`
	Audio   Audio   `mapstructure:"audio"`
	Speech  Speech  `mapstructure:"speech"`
	Display Display `mapstructure:"display"`
	Round   Round   `mapstructure:"round"`
	Vocab   Vocab   `mapstructure:"vocab"`
}

// DB selects the persistence backend. A non-empty URL selects PostgreSQL.
type DB struct {
	Path            string        `mapstructure:"path"` // SQLite file; empty means the XDG default
	URL             string        `mapstructure:"url"`
	MaxConnections  int32         `mapstructure:"max_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// Audio configures recorded word audio.
type Audio struct {
	BaseDir         string `mapstructure:"base_dir"`
	PreferredFormat string `mapstructure:"preferred_format"` // mp3 or wav
	Player          string `mapstructure:"player"`           // command line; the asset path is appended
}

// Speech configures the synthesis fallback.
type Speech struct {
	Engine       string        `mapstructure:"engine"` // auto, say, espeak-ng, none
	Rate         float64       `mapstructure:"rate"`
	Pitch        float64       `mapstructure:"pitch"`
	StartDelay   time.Duration `mapstructure:"start_delay"`
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
}

// Display configures the visual fallback.
type Display struct {
	Duration time.Duration `mapstructure:"duration"`
}

// Round configures question rounds.
type Round struct {
	Questions    int           `mapstructure:"questions"`
	CorrectDelay time.Duration `mapstructure:"correct_delay"`
	WrongDelay   time.Duration `mapstructure:"wrong_delay"`
	SpeakDelay   time.Duration `mapstructure:"speak_delay"`
}

// Vocab selects the sight-word list. An empty file means the built-in list.
type Vocab struct {
	File string `mapstructure:"file"`
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config path; it must exist when set.
	ConfigFile string

	// EnvFile is loaded into the environment first. Defaults to ".env";
	// a missing file is ignored.
	EnvFile string
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing priority.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(filepath.Join(dir, "schoolhelper"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db.url", EnvPrefix+"_DB_URL", "DATABASE_URL")
	_ = v.BindEnv("env", EnvPrefix+"_ENV", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// userConfigDir prefers $XDG_CONFIG_HOME on every platform.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("db.path", "")
	v.SetDefault("db.url", "")
	v.SetDefault("db.max_connections", 5)
	v.SetDefault("db.max_conn_lifetime", "30m")

	v.SetDefault("audio.base_dir", filepath.Join("audio", "words"))
	v.SetDefault("audio.preferred_format", "mp3")
	v.SetDefault("audio.player", "ffplay -nodisp -autoexit -loglevel quiet")

	v.SetDefault("speech.engine", "auto")
	v.SetDefault("speech.rate", 0.75)
	v.SetDefault("speech.pitch", 1.1)
	v.SetDefault("speech.start_delay", "150ms")
	v.SetDefault("speech.check_timeout", "1s")

	v.SetDefault("display.duration", "2s")

	v.SetDefault("round.questions", 10)
	v.SetDefault("round.correct_delay", "800ms")
	v.SetDefault("round.wrong_delay", "1500ms")
	v.SetDefault("round.speak_delay", "500ms")

	v.SetDefault("vocab.file", "")
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.Round.Questions <= 0:
		return fmt.Errorf("round.questions must be positive, got %d", c.Round.Questions)
	case c.Speech.Rate <= 0 || c.Speech.Rate > 10:
		return fmt.Errorf("speech.rate must be in (0, 10], got %g", c.Speech.Rate)
	case c.Speech.Pitch < 0 || c.Speech.Pitch > 2:
		return fmt.Errorf("speech.pitch must be in [0, 2], got %g", c.Speech.Pitch)
	case c.DB.MaxConnections < 0:
		return fmt.Errorf("db.max_connections must not be negative, got %d", c.DB.MaxConnections)
	}
	return nil
}

// UsePostgres reports whether a hosted database is configured.
func (c *Config) UsePostgres() bool {
	return c.DB.URL != ""
}
