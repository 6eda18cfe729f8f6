package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/joshuapare/regkit/cmd/regctl/logger"
	"github.com/joshuapare/regkit/internal/codec"
	"github.com/joshuapare/regkit/internal/mmfile"
	"github.com/joshuapare/regkit/registry"
)

const (
	configFileName = ".regctl"
	configFileType = "yaml"

	cfgKeyWidth      = "width"
	cfgKeyEngine     = "engine"
	cfgKeySeed       = "seed"
	cfgKeyLogEnabled = "log.enabled"
	cfgKeyLogLevel   = "log.level"
	cfgKeyLogDir     = "log.dir"
	cfgKeyLogKeep    = "log.retention"

	engineHost   = "host"
	engineMemory = "memory"
)

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"width":  cfgKeyWidth,
	"engine": cfgKeyEngine,
	"seed":   cfgKeySeed,
	"log":    cfgKeyLogEnabled,
}

// settings is the resolved configuration of one invocation.
type settings struct {
	width  registry.Width
	engine string
	seed   string
	log    logger.Options
}

func defaultEngine() string {
	if runtime.GOOS == "windows" {
		return engineHost
	}
	return engineMemory
}

// loadConfig reads the config file and binds flags over it. An explicit
// path must exist; a missing ~/.regctl.yaml is not an error.
func loadConfig(path string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyWidth, codec.Wide.String())
	v.SetDefault(cfgKeyEngine, defaultEngine())
	v.SetDefault(cfgKeyLogEnabled, false)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetDefault(cfgKeyLogKeep, logger.DefaultRetention)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return v, nil
}

func resolveSettings(v *viper.Viper) (settings, error) {
	w, err := codec.ParseWidth(v.GetString(cfgKeyWidth))
	if err != nil {
		return settings{}, err
	}

	s := settings{
		width:  w,
		engine: v.GetString(cfgKeyEngine),
		seed:   v.GetString(cfgKeySeed),
		log: logger.Options{
			Enabled:   v.GetBool(cfgKeyLogEnabled),
			LogDir:    v.GetString(cfgKeyLogDir),
			Retention: v.GetDuration(cfgKeyLogKeep),
		},
	}
	if err := s.log.Level.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("log.level: %w", err)
	}
	if s.engine != engineHost && s.engine != engineMemory {
		return settings{}, fmt.Errorf("engine must be %q or %q, got %q", engineHost, engineMemory, s.engine)
	}
	if s.seed != "" && s.engine != engineMemory {
		return settings{}, errors.New("seed requires the memory engine")
	}
	return s, nil
}

// newRegistry builds the registry s describes. A seed file is imported
// into the memory engine before any command runs.
func newRegistry(s settings, log *slog.Logger) (*registry.Registry, error) {
	opts := []registry.Option{registry.WithWidth(s.width), registry.WithLogger(log)}

	var r *registry.Registry
	switch s.engine {
	case engineHost:
		var err error
		if r, err = registry.Host(opts...); err != nil {
			return nil, err
		}
	default:
		r = registry.Memory(opts...)
	}

	if s.seed != "" {
		data, unmap, err := mmfile.Map(s.seed)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		defer unmap()
		if err := registry.Import(r, data); err != nil {
			return nil, fmt.Errorf("seed %s: %w", s.seed, err)
		}
		log.Debug("seeded memory registry", "file", s.seed)
	}
	return r, nil
}
