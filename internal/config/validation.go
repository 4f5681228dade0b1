package config

import (
	"path/filepath"
	"regexp"

	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
)

var (
	languagePattern = regexp.MustCompile(`^[a-z]{2}$`)
	semverPattern   = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)
)

// Validate checks a fully merged configuration.
func Validate(cfg *Config) error {
	invalid := func(field, msg string, value any) error {
		return ferrors.ConfigError(msg).WithContext("field", field).WithContext("value", value).Build()
	}

	if cfg.Content.Root == "" {
		return invalid("content.root", "content root must be set", cfg.Content.Root)
	}
	if cfg.Content.Output == "" || !filepath.IsLocal(cfg.Content.Output) {
		return invalid("content.output", "output must be a relative path inside the content root", cfg.Content.Output)
	}
	if cfg.Content.IgnoreFile != "" && !filepath.IsLocal(cfg.Content.IgnoreFile) {
		return invalid("content.ignore_file", "ignore file must be a relative path inside the content root", cfg.Content.IgnoreFile)
	}
	if cfg.Module.ID == "" {
		return invalid("module.id", "module id must be set", cfg.Module.ID)
	}
	if !languagePattern.MatchString(cfg.Module.Language) {
		return invalid("module.language", "language must be a two-letter code", cfg.Module.Language)
	}
	switch cfg.Module.Direction {
	case DirectionRTL, DirectionLTR:
	default:
		return invalid("module.direction", "direction must be rtl or ltr", cfg.Module.Direction)
	}
	if !semverPattern.MatchString(cfg.Module.Version) {
		return invalid("module.version", "version must be a semantic version", cfg.Module.Version)
	}
	switch cfg.IDs.OnDuplicate {
	case DuplicateSuffix, DuplicateFail:
	default:
		return invalid("ids.on_duplicate", "on_duplicate must be suffix or fail", cfg.IDs.OnDuplicate)
	}
	if cfg.Watch.Debounce <= 0 {
		return invalid("watch.debounce", "debounce must be positive", cfg.Watch.Debounce)
	}
	if cfg.Watch.ResyncInterval < 0 {
		return invalid("watch.resync_interval", "resync interval must not be negative", cfg.Watch.ResyncInterval)
	}
	if cfg.Notify.NATSURL != "" && cfg.Notify.Subject == "" {
		return invalid("notify.subject", "subject is required when nats_url is set", cfg.Notify.Subject)
	}
	if cfg.Notify.MaxRetries < 0 {
		return invalid("notify.max_retries", "max_retries must not be negative", cfg.Notify.MaxRetries)
	}
	return nil
}
