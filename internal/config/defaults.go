package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		ChunkSize:      1000,
		ChunkOverlap:   200,
		TopK:           3,
		DataDir:        "./data",
		CollectionName: "documents",
		Port:           8000,
		SMTP: SMTPConfig{
			Port: 587,
		},
	}
}
