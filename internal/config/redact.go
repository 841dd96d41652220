package config

import "net/url"

// Redacted returns a copy of cfg that is safe to log: the password of a URL
// style DSN is replaced with "xxxxx".
func (cfg StructuredConfig) Redacted() StructuredConfig {
	cfg.Storage.DB.DSN = redactDSN(cfg.Storage.DB.DSN)
	return cfg
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
