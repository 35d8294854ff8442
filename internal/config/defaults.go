package config

const (
	defaultConfigPath       = "~/.config/juiceit/config.toml"
	defaultHandBrakeBinary  = "HandBrakeCLI"
	defaultEncoder          = "x264"
	defaultQuality          = "20"
	defaultPreset           = "HQ 1080p30 Surround"
	defaultFrameRate        = "30"
	defaultSubtitleTrack    = 1
	defaultSubtitleLanguage = "eng"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults. The output
// directory defaults to the working directory and is resolved during
// normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: ".",
		},
		HandBrake: HandBrake{
			Binary:      defaultHandBrakeBinary,
			Encoder:     defaultEncoder,
			Quality:     defaultQuality,
			Deinterlace: true,
			Preset:      defaultPreset,
			FrameRate:   defaultFrameRate,
		},
		Subtitles: Subtitles{
			Track:    defaultSubtitleTrack,
			Language: defaultSubtitleLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
