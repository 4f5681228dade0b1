package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of category with that category's default severity.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	severity, ok := defaultSeverity[category]
	if !ok {
		severity = SeverityError
	}
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: severity,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithPath records the file or directory the error concerns.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext(contextPath, path)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder   { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the error. The builder may be reused; each Build yields a copy.
func (b *ErrorBuilder) Build() *ClassifiedError {
	built := b.err
	built.context = make(ErrorContext, len(b.err.context))
	for k, v := range b.err.context {
		built.context[k] = v
	}
	return &built
}

func ConfigError(message string) *ErrorBuilder     { return NewError(CategoryConfig, message) }
func ValidationError(message string) *ErrorBuilder { return NewError(CategoryValidation, message) }
func NotFoundError(message string) *ErrorBuilder   { return NewError(CategoryNotFound, message) }
func FileSystemError(message string) *ErrorBuilder { return NewError(CategoryFileSystem, message) }
func ContentWarning(message string) *ErrorBuilder  { return NewError(CategoryContent, message) }
func InternalError(message string) *ErrorBuilder   { return NewError(CategoryInternal, message) }

// HistoryError and NotifyError never fail a run that wrote its manifest.
func HistoryError(message string) *ErrorBuilder { return NewError(CategoryHistory, message) }
func NotifyError(message string) *ErrorBuilder  { return NewError(CategoryNotify, message) }
