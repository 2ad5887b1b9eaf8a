package config

// RedactSecret masks a password or token for logging. Empty values stay
// empty so an unset secret remains visible as such.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}

	return "***"
}

// Redacted returns a copy of c with every secret masked.
func (c *Config) Redacted() Config {
	out := *c
	out.SteamPassword = RedactSecret(c.SteamPassword)
	out.FediAccessToken = RedactSecret(c.FediAccessToken)

	return out
}
