package elevconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/gnel3/elevator-challenge/internal/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var Log = logger.GetLogger()

const (
	DEFAULT_CONFIG_PATH = "config/elevator_config.yaml"
	DEFAULT_ENV_PATH    = ".env"
	ENV_PREFIX          = "ELEVATOR_"
)

type Settings struct {
	Identifier        string        `yaml:"Identifier"`
	NumberOfElevators int           `yaml:"NumberOfElevators"`
	NumberOfFloors    int           `yaml:"NumberOfFloors"`
	MaxPassengers     int           `yaml:"MaxPassengers"`
	SimulateMovement  bool          `yaml:"SimulateMovement"`
	FloorTravelTime   time.Duration `yaml:"FloorTravelTime"`
	SelectionTimeout  time.Duration `yaml:"SelectionTimeout"`
	RefreshInterval   time.Duration `yaml:"RefreshInterval"`
	LogLevel          string        `yaml:"LogLevel"`
}

func Default() Settings {
	return Settings{
		NumberOfElevators: 3,
		NumberOfFloors:    10,
		MaxPassengers:     10,
		SimulateMovement:  true,
		FloorTravelTime:   time.Second,
		SelectionTimeout:  30 * time.Second,
		RefreshInterval:   time.Second,
		LogLevel:          "info",
	}
}

// Load builds settings from defaults, then the YAML file, then the .env
// file, then the process environment. Missing files are skipped.
func Load(configPath string, envPath string) (Settings, error) {
	settings := Default()

	if err := decodeFile(configPath, &settings); err != nil {
		return settings, err
	}

	envFile := map[string]string{}
	if envPath != "" {
		values, err := godotenv.Read(envPath)
		switch {
		case err == nil:
			envFile = values
		case errors.Is(err, os.ErrNotExist):
			Log.Debug().Msgf("No env file at %v, skipping", envPath)
		default:
			return settings, fmt.Errorf("error reading env file %v: %w", envPath, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := envFile[key]
		return value, ok
	}
	if err := settings.applyEnv(lookup); err != nil {
		return settings, err
	}

	return settings, settings.Validate()
}

func decodeFile(configPath string, settings *Settings) error {
	if configPath == "" {
		return nil
	}

	file, err := os.Open(configPath)
	if errors.Is(err, os.ErrNotExist) {
		Log.Debug().Msgf("No config file at %v, using defaults", configPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error opening config file %v: %w", configPath, err)
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(settings)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error decoding config file %v: %w", configPath, err)
	}
	return nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	for _, field := range []struct {
		key   string
		apply func(string) error
	}{
		{"IDENTIFIER", func(v string) error { s.Identifier = v; return nil }},
		{"NUMBER_OF_ELEVATORS", intSetter(&s.NumberOfElevators)},
		{"NUMBER_OF_FLOORS", intSetter(&s.NumberOfFloors)},
		{"MAX_PASSENGERS", intSetter(&s.MaxPassengers)},
		{"SIMULATE_MOVEMENT", boolSetter(&s.SimulateMovement)},
		{"FLOOR_TRAVEL_TIME", durationSetter(&s.FloorTravelTime)},
		{"SELECTION_TIMEOUT", durationSetter(&s.SelectionTimeout)},
		{"REFRESH_INTERVAL", durationSetter(&s.RefreshInterval)},
		{"LOG_LEVEL", func(v string) error { s.LogLevel = v; return nil }},
	} {
		value, ok := lookup(ENV_PREFIX + field.key)
		if !ok {
			continue
		}
		if err := field.apply(value); err != nil {
			return elevresult.ErrInvalidSettings.WithMessage("%s%s=%q: %v", ENV_PREFIX, field.key, value, err)
		}
	}
	return nil
}

func intSetter(target *int) func(string) error {
	return func(value string) error {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func boolSetter(target *bool) func(string) error {
	return func(value string) error {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

func durationSetter(target *time.Duration) func(string) error {
	return func(value string) error {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*target = parsed
		return nil
	}
}

// Validate rejects non-positive counts and negative durations.
func (s Settings) Validate() error {
	switch {
	case s.NumberOfElevators <= 0:
		return elevresult.ErrInvalidSettings.WithMessage("NumberOfElevators must be positive, got %d", s.NumberOfElevators)
	case s.NumberOfFloors <= 0:
		return elevresult.ErrInvalidSettings.WithMessage("NumberOfFloors must be positive, got %d", s.NumberOfFloors)
	case s.MaxPassengers <= 0:
		return elevresult.ErrInvalidSettings.WithMessage("MaxPassengers must be positive, got %d", s.MaxPassengers)
	case s.FloorTravelTime < 0:
		return elevresult.ErrInvalidSettings.WithMessage("FloorTravelTime must not be negative, got %v", s.FloorTravelTime)
	case s.SelectionTimeout < 0:
		return elevresult.ErrInvalidSettings.WithMessage("SelectionTimeout must not be negative, got %v", s.SelectionTimeout)
	case s.RefreshInterval < 0:
		return elevresult.ErrInvalidSettings.WithMessage("RefreshInterval must not be negative, got %v", s.RefreshInterval)
	}
	return nil
}
