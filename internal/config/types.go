package config

// SMTPConfig holds the outbound mail transport settings. Empty credentials
// are a legitimate state: the email tool simulates delivery instead of
// failing the conversation.
type SMTPConfig struct {
	Host     string `yaml:"host" koanf:"host"`
	Port     int    `yaml:"port" koanf:"port"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	From     string `yaml:"from" koanf:"from"`
}

// Config is the top-level smartsupport configuration, corresponding to
// .smartsupport.yml.
type Config struct {
	Model          string `yaml:"model" koanf:"model"`
	EmbeddingModel string `yaml:"embedding_model" koanf:"embedding_model"`

	// RateLimitRPM caps model requests per minute. Zero disables the cap.
	RateLimitRPM int `yaml:"rate_limit_rpm" koanf:"rate_limit_rpm"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	TopK         int `yaml:"top_k" koanf:"top_k"`

	DataDir        string `yaml:"data_dir" koanf:"data_dir"`
	CollectionName string `yaml:"collection_name" koanf:"collection_name"`

	// KnowledgeDir, when set, is watched for new documents to auto-ingest.
	KnowledgeDir string `yaml:"knowledge_dir" koanf:"knowledge_dir"`

	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	SMTP SMTPConfig `yaml:"smtp" koanf:"smtp"`
}
