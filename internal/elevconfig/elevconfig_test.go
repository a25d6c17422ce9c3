package elevconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnel3/elevator-challenge/internal/elevresult"
	"github.com/gnel3/elevator-challenge/internal/logger"
	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir string, name string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Error writing %v: %v", path, err)
	}
	return path
}

func TestLoadMissingFilesUsesDefaults(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	dir := t.TempDir()

	settings, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load() = %v, expected nil", err)
	}
	if settings != Default() {
		t.Errorf("Load() = %+v, expected defaults %+v", settings, Default())
	}
}

func TestLoadYAML(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "elevator_config.yaml", `
NumberOfElevators: 2
NumberOfFloors: 12
MaxPassengers: 8
SimulateMovement: false
FloorTravelTime: 250ms
LogLevel: debug
`)

	settings, err := Load(configPath, "")
	if err != nil {
		t.Fatalf("Load() = %v, expected nil", err)
	}

	if settings.NumberOfElevators != 2 || settings.NumberOfFloors != 12 || settings.MaxPassengers != 8 {
		t.Errorf("Load() counts = %+v", settings)
	}
	if settings.SimulateMovement {
		t.Errorf("Expected SimulateMovement false")
	}
	if settings.FloorTravelTime != 250*time.Millisecond {
		t.Errorf("FloorTravelTime = %v, expected 250ms", settings.FloorTravelTime)
	}
	if settings.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, expected debug", settings.LogLevel)
	}
	// not in the file
	if settings.SelectionTimeout != Default().SelectionTimeout {
		t.Errorf("SelectionTimeout = %v, expected default %v", settings.SelectionTimeout, Default().SelectionTimeout)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	configPath := writeFile(t, t.TempDir(), "empty.yaml", "")

	settings, err := Load(configPath, "")
	if err != nil {
		t.Fatalf("Load() = %v, expected nil", err)
	}
	if settings != Default() {
		t.Errorf("Load() = %+v, expected defaults", settings)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	configPath := writeFile(t, t.TempDir(), "bad.yaml", "NumberOfFloors: [not, a, number]\n")

	if _, err := Load(configPath, ""); err == nil {
		t.Errorf("Load() = nil, expected a decode error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	dir := t.TempDir()
	configPath := writeFile(t, dir, "elevator_config.yaml", "NumberOfFloors: 12\nMaxPassengers: 8\n")
	envPath := writeFile(t, dir, ".env", "ELEVATOR_NUMBER_OF_FLOORS=20\nELEVATOR_MAX_PASSENGERS=6\nELEVATOR_IDENTIFIER=tower-a\n")

	// process environment beats the .env file
	t.Setenv("ELEVATOR_MAX_PASSENGERS", "4")
	t.Setenv("ELEVATOR_SIMULATE_MOVEMENT", "false")

	settings, err := Load(configPath, envPath)
	if err != nil {
		t.Fatalf("Load() = %v, expected nil", err)
	}
	if settings.NumberOfFloors != 20 {
		t.Errorf("NumberOfFloors = %d, expected 20 from .env", settings.NumberOfFloors)
	}
	if settings.MaxPassengers != 4 {
		t.Errorf("MaxPassengers = %d, expected 4 from environment", settings.MaxPassengers)
	}
	if settings.SimulateMovement {
		t.Errorf("SimulateMovement = true, expected false from environment")
	}
	if settings.Identifier != "tower-a" {
		t.Errorf("Identifier = %q, expected tower-a", settings.Identifier)
	}
}

func TestLoadBadEnvValue(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	t.Setenv("ELEVATOR_FLOOR_TRAVEL_TIME", "fast")

	_, err := Load("", "")
	if !errors.Is(err, elevresult.ErrInvalidSettings) {
		t.Errorf("Load() = %v, expected %v", err, elevresult.ErrInvalidSettings)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}

	mutations := []func(*Settings){
		func(s *Settings) { s.NumberOfElevators = 0 },
		func(s *Settings) { s.NumberOfFloors = -1 },
		func(s *Settings) { s.MaxPassengers = 0 },
		func(s *Settings) { s.FloorTravelTime = -time.Second },
		func(s *Settings) { s.SelectionTimeout = -time.Second },
		func(s *Settings) { s.RefreshInterval = -time.Second },
	}
	for index, mutate := range mutations {
		settings := Default()
		mutate(&settings)
		if err := settings.Validate(); !errors.Is(err, elevresult.ErrInvalidSettings) {
			t.Errorf("mutation %d: Validate() = %v, expected %v", index, err, elevresult.ErrInvalidSettings)
		}
	}

	zeroDurations := Default()
	zeroDurations.FloorTravelTime = 0
	zeroDurations.SelectionTimeout = 0
	if err := zeroDurations.Validate(); err != nil {
		t.Errorf("Zero durations should be valid, got %v", err)
	}
}
