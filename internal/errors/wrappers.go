package errors

import (
	stderrors "errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// WrapGenerateError wraps an error with a "failed to generate" message
func WrapGenerateError(artifact string, cause error) *GenerationError {
	return &GenerationError{
		BaseError: Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", artifact), cause),
		Artifact:  artifact,
	}
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *GenerationError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return &GenerationError{
		BaseError: Wrap(TemplateErrorCode, message, cause),
		Artifact:  templateName,
		Stage:     operation,
	}
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapManifestError wraps manifest loading and decoding errors
func WrapManifestError(path string, cause error) *BaseError {
	return Wrap(ManifestErrorCode, fmt.Sprintf("failed to load manifest '%s'", path), cause).
		WithLocation(SourceLocation{File: path}).
		WithSuggestion("Check the manifest against the [[destination]] table layout")
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}
