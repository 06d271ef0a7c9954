package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:         30000, // 30 seconds
		FollowRedirects: BoolPtr(true),
		MaxRedirects:    10,
		ValidateSSL:     BoolPtr(true),
		MaxBodyBytes:    10 << 20,
		EnvFile:         ".env",
		OperatorURL:     "http://localhost:5000",
		ManifestDir:     "oracles",
		HistoryDB:       ".pathpick/history.db",
		SampleRate:      1,
		LogLevel:        "warn",
		Verbose:         BoolPtr(false),
		NoColor:         BoolPtr(false),
		NoHistory:       BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Timeout == defaults.Timeout &&
		c.GetFollowRedirects() == defaults.GetFollowRedirects() &&
		c.MaxRedirects == defaults.MaxRedirects &&
		c.GetValidateSSL() == defaults.GetValidateSSL() &&
		c.Proxy == defaults.Proxy &&
		c.MaxBodyBytes == defaults.MaxBodyBytes &&
		len(c.Headers) == 0 &&
		c.EnvFile == defaults.EnvFile &&
		c.OperatorURL == defaults.OperatorURL &&
		c.ManifestDir == defaults.ManifestDir &&
		c.HistoryDB == defaults.HistoryDB &&
		c.SampleRate == defaults.SampleRate &&
		c.LogLevel == defaults.LogLevel &&
		c.LogFile == defaults.LogFile &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.GetNoHistory() == defaults.GetNoHistory()
}
