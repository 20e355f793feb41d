package config

// ServerConfig represents the configuration for the API server
type ServerConfig struct {
	ListenAddress   string
	Mode            string
	MaxContentBytes int
}

// StoreConfig represents the configuration for the record store
type StoreConfig struct {
	Type       string
	SeedDemo   bool
	SQLitePath string
	MySQLDSN   string
}

// EngineConfig represents the configuration for the risk evaluator
type EngineConfig struct {
	JitterEnabled  bool
	TrustedDomains []string
}

// IngestConfig represents the configuration for the SMTP ingest adapter
type IngestConfig struct {
	Enabled       bool
	ListenAddress string
	BlockSpam     bool
	StatusHeader  string
	ScoreHeader   string
	FlagsHeader   string
	RelayEnabled  bool
	RelayAddress  string
	RelayPort     int
}

// GetServer returns the API server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		Mode:            c.GetString("server.mode"),
		MaxContentBytes: c.GetInt("server.max_content_bytes"),
	}
}

// GetStore returns the record store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SeedDemo:   c.GetBool("store.seed_demo"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetEngine returns the risk evaluator configuration
func (c *Config) GetEngine() EngineConfig {
	return EngineConfig{
		JitterEnabled:  c.GetBool("engine.jitter_enabled"),
		TrustedDomains: c.GetStringSlice("engine.trusted_domains"),
	}
}

// GetIngest returns the SMTP ingest configuration
func (c *Config) GetIngest() IngestConfig {
	return IngestConfig{
		Enabled:       c.GetBool("ingest.enabled"),
		ListenAddress: c.GetString("ingest.listen_address"),
		BlockSpam:     c.GetBool("ingest.block_spam"),
		StatusHeader:  c.GetString("ingest.headers.status"),
		ScoreHeader:   c.GetString("ingest.headers.score"),
		FlagsHeader:   c.GetString("ingest.headers.flags"),
		RelayEnabled:  c.GetBool("ingest.relay.enabled"),
		RelayAddress:  c.GetString("ingest.relay.address"),
		RelayPort:     c.GetInt("ingest.relay.port"),
	}
}
