package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DMM       InstrumentConfig `yaml:"dmm"`
	PSU       InstrumentConfig `yaml:"psu"`
	Capture   CaptureConfig    `yaml:"capture"`
	Sequences []SequenceConfig `yaml:"sequences"`
	Log       LogConfig        `yaml:"log"`
	Monitor   MonitorConfig    `yaml:"monitor"`
	Redis     RedisConfig      `yaml:"redis"`
}

// InstrumentConfig overrides the driver defaults when Timeout or Port is
// non-zero.
type InstrumentConfig struct {
	Resource string        `yaml:"resource"`
	Timeout  time.Duration `yaml:"timeout"`
	Port     int           `yaml:"port"`
}

type CaptureConfig struct {
	Function string        `yaml:"function"`
	Buffer   string        `yaml:"buffer"`
	Duration time.Duration `yaml:"duration"`
	Delay    time.Duration `yaml:"delay"`
	Publish  bool          `yaml:"publish"`
}

type SequenceConfig struct {
	Channel     int          `yaml:"channel"`
	Cycles      int          `yaml:"cycles"`
	OffWhenDone bool         `yaml:"off_when_done"`
	Steps       []StepConfig `yaml:"steps"`
}

type StepConfig struct {
	Voltage  float64       `yaml:"voltage"`
	Current  float64       `yaml:"current"`
	Duration time.Duration `yaml:"duration"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitorConfig struct {
	Enabled     bool `yaml:"enabled"`
	MetricsPort int  `yaml:"metrics_port"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
	Channel  string `yaml:"channel"`
	MaxLen   int64  `yaml:"max_len"`
}

// LoadConfig reads path over the defaults; keys missing from the file keep
// their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	config := GetDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	return config, nil
}

func GetDefaultConfig() *Config {
	return &Config{
		DMM: InstrumentConfig{
			Resource: "TCPIP::192.168.252.20::INSTR",
			Timeout:  5 * time.Second,
		},
		PSU: InstrumentConfig{
			Resource: "TCPIP::192.168.252.18::INSTR",
			Timeout:  2 * time.Second,
		},
		Capture: CaptureConfig{
			Function: "VOLT:DC",
			Buffer:   "defbuffer1",
			Duration: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Monitor: MonitorConfig{
			Enabled:     false,
			MetricsPort: 9090,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			Channel:  "instrument_readings",
			MaxLen:   10000,
		},
	}
}
