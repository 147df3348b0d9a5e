// Package config loads runtime settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "VINPUT"

type Config struct {
	Listen        string  `mapstructure:"listen"`
	TickRate      int     `mapstructure:"tick_rate"`
	Bindings      string  `mapstructure:"bindings"`
	WatchBindings bool    `mapstructure:"watch_bindings"`
	Controllers   bool    `mapstructure:"controllers"`
	Deadzone      float64 `mapstructure:"deadzone"`
	Tray          bool    `mapstructure:"tray"`
	Minify        bool    `mapstructure:"minify"`
	Debug         bool    `mapstructure:"debug"`

	VirtualGamepads bool     `mapstructure:"virtual_gamepads"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	MDNS            bool     `mapstructure:"mdns"`
	LogFile         string   `mapstructure:"log_file"`
	LogMaxSizeMB    int      `mapstructure:"log_max_size_mb"`
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("virtualinput", pflag.ContinueOnError)
	flags.String("config", "", "config file (toml, yaml or json)")
	flags.String("listen", ":8080", "HTTP listen address")
	flags.Int("tick-rate", 60, "input ticks per second")
	flags.String("bindings", "bindings.toml", "bindings file")
	flags.Bool("watch-bindings", true, "reload the bindings file when it changes")
	flags.Bool("controllers", true, "read physical controllers through SDL3")
	flags.Float64("deadzone", 0.05, "controller stick deadzone (0..1)")
	flags.Bool("tray", true, "show a system tray icon on Windows")
	flags.Bool("minify", true, "minify frontend assets")
	flags.Bool("debug", false, "log raw controller events")
	flags.Bool("virtual-gamepads", false, "mirror joysticks to uinput gamepads (Linux)")
	flags.StringSlice("cors-origins", []string{"*"}, "origins allowed to read /api")
	flags.Bool("mdns", false, "advertise the viewer over mDNS")
	flags.String("log-file", "", "also write logs to this file, rotated by size")
	flags.Int("log-max-size-mb", 10, "rotate the log file after this many megabytes")
	flags.String("env-file", ".env", "dotenv file read before the environment")
	return flags
}

// Load parses args (without the program name). Flags override environment
// variables, which override the config file.
func Load(args []string) (*Config, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if path, _ := flags.GetString("env-file"); path != "" {
		if err := loadEnvFile(path); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "env-file" {
			return
		}
		// tick-rate -> tick_rate
		_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate %d out of range 1..1000", c.TickRate))
	}
	if c.Deadzone < 0 || c.Deadzone >= 1 {
		errs = append(errs, fmt.Errorf("deadzone %v out of range [0, 1)", c.Deadzone))
	}
	if c.Bindings == "" {
		errs = append(errs, errors.New("bindings path is empty"))
	}
	if c.LogFile != "" && c.LogMaxSizeMB < 1 {
		errs = append(errs, fmt.Errorf("log_max_size_mb %d must be positive", c.LogMaxSizeMB))
	}
	return errors.Join(errs...)
}

// loadEnvFile copies variables from a dotenv file into the environment.
// Variables already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read env file %s: %w", path, err)
}

// TickInterval is the duration of one input frame.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
