package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscoder()
	c.normalizeFetch()
	c.normalizePipeline()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		c.Paths.WorkspaceDir = defaultWorkspaceDir
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ResultsDir) == "" {
		c.Paths.ResultsDir = defaultResultsDir
	}
	if c.Paths.ResultsDir, err = expandPath(c.Paths.ResultsDir); err != nil {
		return fmt.Errorf("paths.results_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeTranscoder() {
	if strings.TrimSpace(c.Transcoder.FFmpegBinary) == "" {
		c.Transcoder.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Transcoder.FFprobeBinary) == "" {
		c.Transcoder.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Transcoder.Width <= 0 {
		c.Transcoder.Width = defaultWidth
	}
	if c.Transcoder.Height <= 0 {
		c.Transcoder.Height = defaultHeight
	}
	if c.Transcoder.FrameRate <= 0 {
		c.Transcoder.FrameRate = defaultFrameRate
	}
	if strings.TrimSpace(c.Transcoder.Preset) == "" {
		c.Transcoder.Preset = defaultPreset
	}
	if c.Transcoder.CRF <= 0 {
		c.Transcoder.CRF = defaultCRF
	}
	if strings.TrimSpace(c.Transcoder.FontFile) == "" {
		c.Transcoder.FontFile = defaultFontFile
	}
	if c.Transcoder.FontSize <= 0 {
		c.Transcoder.FontSize = defaultFontSize
	}
}

func (c *Config) normalizeFetch() {
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeout
	}
	if c.Fetch.ChunkBytes <= 0 {
		c.Fetch.ChunkBytes = defaultFetchChunkBytes
	}
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.ErrorExcerptLimit <= 0 {
		c.Pipeline.ErrorExcerptLimit = defaultErrorExcerptLimit
	}
	if c.Pipeline.MinFreeBytes <= 0 {
		c.Pipeline.MinFreeBytes = defaultMinFreeBytes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
