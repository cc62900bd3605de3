package nb2hugo

import "github.com/goliatone/go-nb2hugo/internal/runtimeconfig"

var (
	ErrContentDirRequired       = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired        = runtimeconfig.ErrOutputDirRequired
	ErrPatternInvalid           = runtimeconfig.ErrPatternInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrConfigFormatUnknown      = runtimeconfig.ErrConfigFormatUnknown
)

type (
	Config            = runtimeconfig.Config
	ConverterConfig   = runtimeconfig.ConverterConfig
	FrontMatterConfig = runtimeconfig.FrontMatterConfig
	MarkdownConfig    = runtimeconfig.MarkdownConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a TOML, YAML or JSON config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
