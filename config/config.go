package config

// HistoryConfig selects the database that records builds.
type HistoryConfig struct {
	Enabled    bool   `json:"enabled" koanf:"enabled"`
	Engine     string `json:"engine" koanf:"engine"`          // "sqlite" or "mysql"
	DSN        string `json:"dsn" koanf:"dsn"`                // file path for sqlite, DSN for mysql
	MaxRetries int    `json:"maxRetries" koanf:"max_retries"` // connection attempts, 0 uses the pool default
}

// Config structure
type Config struct {
	OutputDir    string        `json:"outputDir" koanf:"output_dir"`
	Language     string        `json:"language" koanf:"language"`
	Author       string        `json:"author" koanf:"author"`
	LogDir       string        `json:"logDir" koanf:"log_dir"`
	Verbose      bool          `json:"verbose" koanf:"verbose"`
	PreviewWidth int           `json:"previewWidth" koanf:"preview_width"`
	SkillsDir    string        `json:"skillsDir" koanf:"skills_dir"`
	History      HistoryConfig `json:"history" koanf:"history"`
}
