package history

import (
	"git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
)

// Sentinel errors for history store operations. Wrapped failures keep the
// sentinel reachable through errors.Is.
var (
	// ErrOpenFailed indicates the SQLite database could not be opened.
	ErrOpenFailed = errors.HistoryError("could not open run history database").Build()

	// ErrSchemaFailed indicates the schema could not be created.
	ErrSchemaFailed = errors.HistoryError("failed to initialize run history schema").Build()

	ErrRecordFailed = errors.HistoryError("failed to record run").Build()
	ErrQueryFailed  = errors.HistoryError("failed to query runs").Build()
)
