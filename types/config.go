package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
	Serve   ServeConfig   `mapstructure:"serve" validate:"omitempty"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir" validate:"omitempty"`
}

// DataConfig holds local persistence configuration
type DataConfig struct {
	File   string `mapstructure:"file" validate:"required"`
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the analysis gateway
type LLMConfig struct {
	Provider        string  `mapstructure:"provider" validate:"omitempty,oneof=openai"`
	ModelName       string  `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey          string  `mapstructure:"apiKey" validate:"omitempty,min=1"`
	BaseURL         string  `mapstructure:"baseURL" validate:"omitempty,url"`
	MaxOutputTokens int     `mapstructure:"maxOutputTokens" validate:"omitempty,min=1"`
	Temperature     float64 `mapstructure:"temperature" validate:"omitempty,min=0,max=2"`
	// RequestTimeoutSeconds controls the HTTP client timeout for analysis calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the provider (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}

// ServeConfig holds settings for the local HTTP API
type ServeConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}
