package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ListingConfig holds settings for the paper-listing stage.
type ListingConfig struct {
	HTTPConfig `yaml:",inline"`

	// Categories are the arXiv subject categories to list (default cs.CV).
	Categories []string `json:"categories" yaml:"categories"`

	// RecentDays is the size of the listing window in days (default 1).
	// Papers announced before now-RecentDays are dropped.
	RecentDays int `json:"recent_days" yaml:"recent_days"`

	// MaxResults caps how many entries each source fetches (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableArxiv controls whether the arXiv API source is used.
	EnableArxiv bool `json:"enable_arxiv" yaml:"enable_arxiv"`

	// FeedURLs lists RSS/Atom feeds to read as an additional source.
	FeedURLs []string `json:"feed_urls,omitempty" yaml:"feed_urls,omitempty"`
}

// CitationConfig holds settings for the citation signal stage.
type CitationConfig struct {
	HTTPConfig `yaml:",inline"`

	// Enabled controls whether citation counts are fetched at all. When
	// false every paper scores as citation-unknown.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// APIKey is an optional Semantic Scholar key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Scale multiplies log2(1+count) to produce the citation score
	// (default 1.0).
	Scale float64 `json:"scale" yaml:"scale"`

	// Cap is the upper bound of the citation score (default 10.0).
	Cap float64 `json:"cap" yaml:"cap"`

	// RequestDelay is the pause between consecutive lookups (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// RankConfig holds the score-combination coefficients and selection policy.
// The total score is
//
//	KeywordWeight*keyword + CitationWeight*citation
//	+ AuthorBonus (preferred author) - ExcludePenalty*excluded hits
//
// floored at zero.
type RankConfig struct {
	// KeywordWeight scales the keyword score (default 1.0).
	KeywordWeight float64 `json:"keyword_weight" yaml:"keyword_weight"`

	// CitationWeight scales the citation score (default 1.0).
	CitationWeight float64 `json:"citation_weight" yaml:"citation_weight"`

	// AuthorBonus is added once when a preferred author matches (default 1.0).
	AuthorBonus float64 `json:"author_bonus" yaml:"author_bonus"`

	// ExcludePenalty is subtracted per excluded-topic hit (default 2.0).
	ExcludePenalty float64 `json:"exclude_penalty" yaml:"exclude_penalty"`

	// MinScore drops papers scoring below it, applied after sorting.
	MinScore float64 `json:"min_score" yaml:"min_score"`

	// TopN caps the number of selected papers, applied after MinScore.
	// Zero means no cap.
	TopN int `json:"top_n" yaml:"top_n"`
}

// RetryConfig describes the retry policy for text-generation requests.
type RetryConfig struct {
	// MaxAttempts is the total number of tries per request (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BaseDelay is the wait before the second attempt (default 2s).
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`

	// MaxDelay bounds the backoff growth (default 30s).
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay"`

	// Multiplier is the backoff growth factor (default 2.0).
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature controls generation randomness (default 0.4).
	Temperature float32 `json:"temperature" yaml:"temperature"`

	// MaxOutputTokens bounds the generated text length (default 2048).
	MaxOutputTokens int32 `json:"max_output_tokens" yaml:"max_output_tokens"`

	// Language is the output language for generated text (default "English").
	Language string `json:"language" yaml:"language"`
}

// SummaryConfig holds settings for the summarization stage.
type SummaryConfig struct {
	AIConfig `yaml:",inline"`

	// Concurrency bounds how many papers are summarized at once (default 3).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Retry is the per-request retry policy.
	Retry RetryConfig `json:"retry" yaml:"retry"`
}

// ReportConfig holds settings for report rendering and output.
type ReportConfig struct {
	// OutputDir is the directory for report files (default "output/reports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Title is the report heading (default "Daily CV Papers Digest").
	Title string `json:"title" yaml:"title"`

	// WriteHTML controls whether an HTML rendering is written next to the
	// Markdown file.
	WriteHTML bool `json:"write_html" yaml:"write_html"`
}

// MailConfig holds SMTP delivery settings.
type MailConfig struct {
	// Enabled controls whether reports are emailed after a run.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Host is the SMTP server hostname.
	Host string `json:"host" yaml:"host"`

	// Port is the SMTP submission port (default 587, STARTTLS).
	Port int `json:"port" yaml:"port"`

	// Username authenticates against the SMTP server. Defaults to From.
	Username string `json:"username,omitempty" yaml:"username,omitempty"`

	// Password authenticates against the SMTP server. Usually supplied via
	// the smtp-password secret rather than the config file.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// From is the sender address.
	From string `json:"from" yaml:"from"`

	// To lists the recipient addresses.
	To []string `json:"to" yaml:"to"`

	// SubjectPrefix starts the subject line (default "CV papers digest").
	SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix"`
}

// HistoryConfig holds settings for the cross-run archive.
type HistoryConfig struct {
	// Enabled controls whether runs and reported papers are recorded and
	// whether previously reported papers are filtered out.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DBPath is the SQLite database path (default "data/digest.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// LookbackDays bounds how far back reported papers suppress
	// re-listing (default 30).
	LookbackDays int `json:"lookback_days" yaml:"lookback_days"`
}

// ScheduleConfig holds settings for the schedule daemon.
type ScheduleConfig struct {
	// Cron is the run schedule in cron syntax (default "0 7 * * *").
	Cron string `json:"cron" yaml:"cron"`
}

// Config groups all stage configurations for the digest pipeline.
type Config struct {
	Listing   ListingConfig  `json:"listing" yaml:"listing"`
	Keywords  KeywordConfig  `json:"keywords" yaml:"keywords"`
	Citations CitationConfig `json:"citations" yaml:"citations"`
	Rank      RankConfig     `json:"rank" yaml:"rank"`
	Summary   SummaryConfig  `json:"summary" yaml:"summary"`
	Report    ReportConfig   `json:"report" yaml:"report"`
	Mail      MailConfig     `json:"mail" yaml:"mail"`
	History   HistoryConfig  `json:"history" yaml:"history"`
	Schedule  ScheduleConfig `json:"schedule" yaml:"schedule"`

	// RunTimeout is the overall deadline for one pipeline run. Papers not
	// summarized when it expires are reported as failed-retryable; the run
	// still assembles a report from whatever completed. Zero disables the
	// deadline.
	RunTimeout time.Duration `json:"run_timeout" yaml:"run_timeout"`

	// KeywordsFile optionally points at a standalone keyword YAML file
	// that replaces the inline Keywords block.
	KeywordsFile string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty"`
}

// DefaultConfig returns a Config with the documented defaults filled in.
func DefaultConfig() Config {
	return Config{
		Listing: ListingConfig{
			HTTPConfig:  HTTPConfig{Timeout: 30 * time.Second, UserAgent: "paper-digest/0.1"},
			Categories:  []string{"cs.CV"},
			RecentDays:  1,
			MaxResults:  100,
			EnableArxiv: true,
		},
		Citations: CitationConfig{
			HTTPConfig:   HTTPConfig{Timeout: 20 * time.Second, UserAgent: "paper-digest/0.1"},
			Enabled:      true,
			Scale:        1.0,
			Cap:          10.0,
			RequestDelay: time.Second,
		},
		Rank: RankConfig{
			KeywordWeight:  1.0,
			CitationWeight: 1.0,
			AuthorBonus:    1.0,
			ExcludePenalty: 2.0,
			MinScore:       1.0,
			TopN:           10,
		},
		Summary: SummaryConfig{
			AIConfig: AIConfig{
				Model:           "gemini-2.0-flash",
				Temperature:     0.4,
				MaxOutputTokens: 2048,
				Language:        "English",
			},
			Concurrency: 3,
			Retry: RetryConfig{
				MaxAttempts: 3,
				BaseDelay:   2 * time.Second,
				MaxDelay:    30 * time.Second,
				Multiplier:  2.0,
			},
		},
		Report: ReportConfig{
			OutputDir: "output/reports",
			Title:     "Daily CV Papers Digest",
			WriteHTML: true,
		},
		Mail: MailConfig{
			Port:          587,
			SubjectPrefix: "CV papers digest",
		},
		History: HistoryConfig{
			Enabled:      true,
			DBPath:       "data/digest.db",
			LookbackDays: 30,
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * *",
		},
		RunTimeout: 20 * time.Minute,
	}
}
