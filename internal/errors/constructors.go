package errors

// Convenience functions for common error patterns

// Config and preset errors

func PresetNotFound(path string) *ScaffoldError {
	return New(CategoryPreset, SeverityFatal, "preset file not found").
		WithContext("path", path)
}

func PresetInvalid(path string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryPreset, SeverityFatal, "preset file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *ScaffoldError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Plugin composition errors

func PluginNotFound(id string) *ScaffoldError {
	return New(CategoryPlugin, SeverityFatal, "plugin not registered").
		WithContext("plugin", id)
}

func PluginApplyFailed(id string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin apply failed").
		WithContext("plugin", id)
}

func PluginHooksFailed(id string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryPlugin, SeverityFatal, "plugin hooks registration failed").
		WithContext("plugin", id)
}

// Generation errors

func RenderFailed(path string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryRender, SeverityFatal, "template render failed").
		WithContext("path", path)
}

func InjectFailed(path string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryInject, SeverityFatal, "source injection failed").
		WithContext("path", path)
}

func TransformFailed(field string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryTransform, SeverityFatal, "config extraction failed").
		WithContext("field", field)
}

func WriteFailed(path string, cause error) *ScaffoldError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "file tree write failed").
		WithContext("path", path)
}

func GitBootstrapFailed(cause error) *ScaffoldError {
	return Wrap(cause, CategoryGit, SeverityError, "git bootstrap failed")
}
