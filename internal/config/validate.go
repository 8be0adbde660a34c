package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscoder(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkspaceDir == "" {
		return errors.New("paths.workspace_dir must be set")
	}
	if c.Paths.ResultsDir == "" {
		return errors.New("paths.results_dir must be set")
	}
	if c.Paths.WorkspaceDir == c.Paths.ResultsDir {
		return errors.New("paths.workspace_dir and paths.results_dir must differ")
	}
	return nil
}

func (c *Config) validateTranscoder() error {
	if c.Transcoder.Width%2 != 0 || c.Transcoder.Height%2 != 0 {
		return errors.New("transcoder.width and transcoder.height must be even for yuv420p output")
	}
	if c.Transcoder.CRF < 0 || c.Transcoder.CRF > 51 {
		return errors.New("transcoder.crf must be between 0 and 51")
	}
	switch c.Transcoder.Preset {
	case "ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow":
	default:
		return fmt.Errorf("transcoder.preset %q is not a known x264 preset", c.Transcoder.Preset)
	}
	return nil
}

func (c *Config) validateFetch() error {
	return ensurePositiveMap(map[string]int{
		"fetch.timeout_seconds": c.Fetch.TimeoutSeconds,
		"fetch.chunk_bytes":     c.Fetch.ChunkBytes,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be greater than zero", key)
		}
	}
	return nil
}
