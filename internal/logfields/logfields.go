package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyModule     = "module_id"
	KeySection    = "section"
	KeyPath       = "path"
	KeyKind       = "kind"
	KeyReason     = "reason"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyHash       = "sections_hash"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Module(id string) slog.Attr      { return slog.String(KeyModule, id) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Hash(h string) slog.Attr         { return slog.String(KeyHash, h) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
