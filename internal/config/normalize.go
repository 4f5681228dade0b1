package config

import (
	"git.home.luguber.info/inful/lessonindex/internal/foundation/normalization"
)

var (
	directionNormalizer = normalization.NewNormalizer(map[string]Direction{
		string(DirectionRTL): DirectionRTL,
		string(DirectionLTR): DirectionLTR,
	})
	duplicateNormalizer = normalization.NewNormalizer(map[string]DuplicatePolicy{
		string(DuplicateSuffix): DuplicateSuffix,
		string(DuplicateFail):   DuplicateFail,
	})
)

// normalize canonicalizes enum fields written in any case ("RTL", " Fail ").
// Unknown values are left untouched for Validate to report.
func normalize(cfg *Config) {
	if d, ok := directionNormalizer.Lookup(string(cfg.Module.Direction)); ok {
		cfg.Module.Direction = d
	}
	if p, ok := duplicateNormalizer.Lookup(string(cfg.IDs.OnDuplicate)); ok {
		cfg.IDs.OnDuplicate = p
	}
}
