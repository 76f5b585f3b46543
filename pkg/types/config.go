package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-translate/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// QueryConfig holds settings for the feed query stage.
type QueryConfig struct {
	// RootURL is the API root; "query?" and the encoded parameters are
	// appended to it.
	RootURL string `json:"root_url" yaml:"root_url" mapstructure:"root_url"`

	// Keywords are search expressions, one query per keyword (e.g. "cat: stat.ML").
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Start is the result offset.
	Start int `json:"start" yaml:"start" mapstructure:"start"`

	// MaxResults is passed through to the provider unchecked.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	SortBy    string `json:"sort_by" yaml:"sort_by" mapstructure:"sort_by"`
	SortOrder string `json:"sort_order" yaml:"sort_order" mapstructure:"sort_order"`

	// Prune drops provider-internal fields from every normalized record.
	Prune bool `json:"prune" yaml:"prune" mapstructure:"prune"`
}

// WindowConfig holds settings for time-window selection.
type WindowConfig struct {
	// Days is the window length counted back from now.
	Days int `json:"days" yaml:"days" mapstructure:"days"`

	// Timezone is the IANA zone the local clock is read in (default "Asia/Tokyo").
	Timezone string `json:"timezone" yaml:"timezone" mapstructure:"timezone"`

	// Debug prints the window boundaries and every raw timestamp before filtering.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// TranslationProvider identifies the translation backend.
type TranslationProvider string

const (
	ProviderGoogle TranslationProvider = "google"
	ProviderClaude TranslationProvider = "claude"
)

// TranslationConfig holds settings for the translation stage.
type TranslationConfig struct {
	// Provider selects the backend: google or claude.
	Provider TranslationProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Source and Target are language codes (default "en" and "ja").
	Source string `json:"source" yaml:"source" mapstructure:"source"`
	Target string `json:"target" yaml:"target" mapstructure:"target"`

	// Concurrency caps in-flight records. 1 translates strictly in list order.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Model is the Claude model identifier, used by the claude provider only.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates the claude provider.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`
}

// ExportFormat selects the output file format.
type ExportFormat string

const (
	FormatCSV    ExportFormat = "csv"
	FormatJSON   ExportFormat = "json"
	FormatYAML   ExportFormat = "yaml"
	FormatSQLite ExportFormat = "sqlite"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Path is the output file. An existing file is replaced.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	Format ExportFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// PipelineConfig groups all stage configurations for a run.
type PipelineConfig struct {
	HTTP        HTTPConfig        `json:"http" yaml:"http" mapstructure:"http"`
	Query       QueryConfig       `json:"query" yaml:"query" mapstructure:"query"`
	Window      WindowConfig      `json:"window" yaml:"window" mapstructure:"window"`
	Translation TranslationConfig `json:"translation" yaml:"translation" mapstructure:"translation"`
	Export      ExportConfig      `json:"export" yaml:"export" mapstructure:"export"`
	Logging     LoggingConfig     `json:"logging" yaml:"logging" mapstructure:"logging"`
}
