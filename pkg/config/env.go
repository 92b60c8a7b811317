package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvGravity     = "GRAVSIM_GRAVITY"
	EnvElasticity  = "GRAVSIM_ELASTICITY"
	EnvTickRate    = "GRAVSIM_TICK_RATE"
	EnvFrameRate   = "GRAVSIM_FRAME_RATE"
	EnvWidth       = "GRAVSIM_WIDTH"
	EnvHeight      = "GRAVSIM_HEIGHT"
	EnvTrailLength = "GRAVSIM_TRAIL_LENGTH"
	EnvAudio       = "GRAVSIM_AUDIO"
)

// ApplyEnvironmentOverrides replaces config values with any GRAVSIM_* variables set
func ApplyEnvironmentOverrides(config *SimulationConfig) error {
	floats := []struct {
		key    string
		target *float64
	}{
		{EnvGravity, &config.Physics.Gravity},
		{EnvElasticity, &config.Physics.Elasticity},
		{EnvWidth, &config.Bounds.Width},
		{EnvHeight, &config.Bounds.Height},
	}
	for _, f := range floats {
		if err := overrideFloat(f.key, f.target); err != nil {
			return err
		}
	}

	ints := []struct {
		key    string
		target *int
	}{
		{EnvTickRate, &config.Clock.TickRate},
		{EnvFrameRate, &config.Clock.FrameRate},
		{EnvTrailLength, &config.Display.TrailLength},
	}
	for _, i := range ints {
		if err := overrideInt(i.key, i.target); err != nil {
			return err
		}
	}

	if value := os.Getenv(EnvAudio); value != "" {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAudio, err)
		}
		config.Display.Audio = enabled
	}

	return nil
}

func overrideFloat(key string, target *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}

func overrideInt(key string, target *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = parsed
	return nil
}
