package errors

// ErrorCategory says which part of a run failed.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // bad config file or flag
	CategoryValidation ErrorCategory = "validation" // content violates a policy, e.g. duplicate IDs under "fail"
	CategoryNotFound   ErrorCategory = "not_found"  // content root missing
	CategoryFileSystem ErrorCategory = "filesystem" // scan or manifest write failure
	CategoryContent    ErrorCategory = "content"    // a single entry was skipped
	CategoryHistory    ErrorCategory = "history"    // run history store
	CategoryNotify     ErrorCategory = "notify"     // NATS notifications
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // The run aborts and no manifest is written
	SeverityError   ErrorSeverity = "error"   // A side channel failed; the manifest is unaffected
	SeverityWarning ErrorSeverity = "warning" // An entry was skipped or rewritten
	SeverityInfo    ErrorSeverity = "info"
)

// defaultSeverity is the severity NewError assigns before any override.
var defaultSeverity = map[ErrorCategory]ErrorSeverity{
	CategoryConfig:     SeverityFatal,
	CategoryValidation: SeverityFatal,
	CategoryNotFound:   SeverityFatal,
	CategoryFileSystem: SeverityFatal,
	CategoryContent:    SeverityWarning,
	CategoryHistory:    SeverityError,
	CategoryNotify:     SeverityError,
	CategoryInternal:   SeverityFatal,
}

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	str, ok := c[key].(string)
	return str, ok
}
