package errors

// Convenience constructors for the error taxonomy used by the pipeline.
// Every constructor records the offending source path(s) so the CLI message
// is actionable without a stack trace.

// Content loading errors

func ParseError(source string, cause error) *BuildError {
	return Wrap(cause, CategoryParse, SeverityFatal, "malformed front matter header").
		WithContext("source", source)
}

func MissingField(source, field string) *BuildError {
	return New(CategoryField, SeverityFatal, "required front matter field missing").
		WithContext("source", source).
		WithContext("field", field)
}

// Routing errors

func RouteConflict(path, source, otherSource string) *BuildError {
	return New(CategoryRoute, SeverityFatal, "two documents resolve to the same output path").
		WithContext("path", path).
		WithContext("source", source).
		WithContext("other_source", otherSource)
}

// Template errors

func IncludeNotFound(include, referencedBy string) *BuildError {
	return New(CategoryInclude, SeverityFatal, "include not found").
		WithContext("include", include).
		WithContext("source", referencedBy)
}

func LayoutCycle(chain []string) *BuildError {
	return New(CategoryLayout, SeverityFatal, "layout inheritance chain contains a cycle").
		WithContext("chain", chain)
}

func UnknownLayout(layout, source string) *BuildError {
	return New(CategoryLayout, SeverityFatal, "layout not found").
		WithContext("layout", layout).
		WithContext("source", source)
}

// Configuration errors

func ConfigNotFound(path string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *BuildError {
	return New(CategoryConfig, SeverityFatal, "configuration validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func WorkspaceError(operation string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func WriteError(path string, cause error) *BuildError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "output write failed").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *BuildError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
