// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.TMDB.APIKey != "" {
		if err := checkURL(c.TMDB.BaseURL); err != nil {
			errs = append(errs, fmt.Sprintf("tmdb.base_url: %v", err))
		}
	}
	if c.TMDB.ImageBaseURL != "" {
		if err := checkURL(c.TMDB.ImageBaseURL); err != nil {
			errs = append(errs, fmt.Sprintf("tmdb.image_base_url: %v", err))
		}
	}
	if c.TMDB.CacheTTL.Duration < 0 {
		errs = append(errs, "tmdb.cache_ttl: must not be negative")
	}

	if strings.ContainsAny(c.Player.TrailerHost, "/:?# ") {
		errs = append(errs, fmt.Sprintf("player.trailer_host: must be a bare host name, got %q", c.Player.TrailerHost))
	}

	if c.Events.Retention.Duration < 0 {
		errs = append(errs, "events.retention: must not be negative")
	}
	if c.Events.PruneInterval.Duration < 0 {
		errs = append(errs, "events.prune_interval: must not be negative")
	}

	return errs
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
