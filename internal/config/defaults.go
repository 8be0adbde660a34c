package config

const (
	defaultWorkspaceDir      = "~/.local/share/reelsmith/jobs"
	defaultResultsDir        = "~/.local/share/reelsmith/results"
	defaultLogDir            = "~/.local/share/reelsmith/logs"
	defaultAPIBind           = "127.0.0.1:8486"
	defaultFFmpegBinary      = "ffmpeg"
	defaultFFprobeBinary     = "ffprobe"
	defaultWidth             = 1080
	defaultHeight            = 1920
	defaultFrameRate         = 25
	defaultPreset            = "veryfast"
	defaultCRF               = 23
	defaultFontFile          = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"
	defaultFontSize          = 48
	defaultFetchTimeout      = 60
	defaultFetchChunkBytes   = 64 * 1024
	defaultErrorExcerptLimit = 240
	defaultMinFreeBytes      = int64(512 * 1024 * 1024)
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			ResultsDir:   defaultResultsDir,
			LogDir:       defaultLogDir,
			APIBind:      defaultAPIBind,
		},
		Transcoder: Transcoder{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Width:         defaultWidth,
			Height:        defaultHeight,
			FrameRate:     defaultFrameRate,
			Preset:        defaultPreset,
			CRF:           defaultCRF,
			FontFile:      defaultFontFile,
			FontSize:      defaultFontSize,
		},
		Fetch: Fetch{
			TimeoutSeconds: defaultFetchTimeout,
			ChunkBytes:     defaultFetchChunkBytes,
		},
		Pipeline: Pipeline{
			ErrorExcerptLimit: defaultErrorExcerptLimit,
			MinFreeBytes:      defaultMinFreeBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
