package config

// ScoringConfig represents the weight and threshold tables for the scorer
type ScoringConfig struct {
	DomainMismatchWeight int
	UrgencyKeywordWeight int
	SuspiciousLinkWeight int
	SPFFailWeight        int
	DKIMFailWeight       int

	PhishingThreshold int
	FraudThreshold    int
	LegitThreshold    int
}

// ExtractionConfig represents the fixed vocabularies for the extractor
type ExtractionConfig struct {
	UrgencyKeywords   []string
	SuspiciousMarkers []string
}

// GeneratorConfig represents the dataset generator settings
type GeneratorConfig struct {
	BatchSize    int
	ShuffleEvery int
}

// HTTPConfig represents the HTTP API settings
type HTTPConfig struct {
	Enabled       bool
	ListenAddress string
}

// SMTPConfig represents the SMTP ingest settings
type SMTPConfig struct {
	Enabled         bool
	ListenAddress   string
	Domain          string
	MaxMessageBytes int64
	MaxRecipients   int
}

// GetScoring returns the scoring configuration
func (c *Config) GetScoring() ScoringConfig {
	return ScoringConfig{
		DomainMismatchWeight: c.GetInt("scoring.weights.domain_mismatch"),
		UrgencyKeywordWeight: c.GetInt("scoring.weights.urgency_keyword"),
		SuspiciousLinkWeight: c.GetInt("scoring.weights.suspicious_link"),
		SPFFailWeight:        c.GetInt("scoring.weights.spf_fail"),
		DKIMFailWeight:       c.GetInt("scoring.weights.dkim_fail"),
		PhishingThreshold:    c.GetInt("scoring.thresholds.phishing"),
		FraudThreshold:       c.GetInt("scoring.thresholds.fraud"),
		LegitThreshold:       c.GetInt("scoring.thresholds.legit"),
	}
}

// GetExtraction returns the extraction configuration
func (c *Config) GetExtraction() ExtractionConfig {
	return ExtractionConfig{
		UrgencyKeywords:   c.GetStringSlice("extraction.urgency_keywords"),
		SuspiciousMarkers: c.GetStringSlice("extraction.suspicious_markers"),
	}
}

// GetGenerator returns the generator configuration
func (c *Config) GetGenerator() GeneratorConfig {
	return GeneratorConfig{
		BatchSize:    c.GetInt("generator.batch_size"),
		ShuffleEvery: c.GetInt("generator.shuffle_every"),
	}
}

// GetHTTP returns the HTTP API configuration
func (c *Config) GetHTTP() HTTPConfig {
	return HTTPConfig{
		Enabled:       c.GetBool("http.enabled"),
		ListenAddress: c.GetString("http.listen_address"),
	}
}

// GetSMTP returns the SMTP ingest configuration
func (c *Config) GetSMTP() SMTPConfig {
	return SMTPConfig{
		Enabled:         c.GetBool("smtp.enabled"),
		ListenAddress:   c.GetString("smtp.listen_address"),
		Domain:          c.GetString("smtp.domain"),
		MaxMessageBytes: int64(c.GetInt("smtp.max_message_bytes")),
		MaxRecipients:   c.GetInt("smtp.max_recipients"),
	}
}
