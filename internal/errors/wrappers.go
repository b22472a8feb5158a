package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// CodeOf returns the code of the first CodedError in the error chain
func CodeOf(err error) ErrorCode {
	var coded CodedError
	if stderrors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return UnknownErrorCode
}

// HasCode reports whether the error chain carries the given code
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// NewModuleNotFoundError reports a type-descriptor module file that does not exist
func NewModuleNotFoundError(path string) *BaseError {
	return Newf(ModuleNotFoundErrorCode, "Missing %s", path).
		WithContext("path", path).
		WithSuggestions(
			"Build the project so the type-descriptor module is emitted",
			"Check module.dir and module.format in the configuration",
		)
}

// WrapModuleFormatError wraps a decode or version failure of a module file
func WrapModuleFormatError(path string, cause error) *BaseError {
	return Wrap(ModuleFormatErrorCode, fmt.Sprintf("failed to decode module '%s'", path), cause).
		WithContext("path", path)
}

// NewTypeLoadError reports a type whose references could not be bound
func NewTypeLoadError(typeName string, cause error) *BaseError {
	return Wrap(TypeLoadErrorCode, fmt.Sprintf("failed to load type '%s'", typeName), cause).
		WithContext("type", typeName)
}

// NewRootNotFoundError reports that no aggregate root satisfies the selector
func NewRootNotFoundError(selector, marker string) *BaseError {
	if selector != "" {
		return Newf(RootNotFoundErrorCode, "context type '%s' not found", selector).
			WithContext("context", selector).
			WithSuggestion("Run 'list' to see the context types defined by the module")
	}
	return Newf(RootNotFoundErrorCode, "no type derived from '%s' found", marker).
		WithContext("marker", marker).
		WithSuggestion("Check context_marker in the configuration")
}

// NewAmbiguousRootError reports several default-scan candidates
func NewAmbiguousRootError(candidates []string) *BaseError {
	return Newf(AmbiguousRootErrorCode, "found %d context types: %s", len(candidates), strings.Join(candidates, ", ")).
		WithContext("candidates", candidates).
		WithSuggestion("Select one with --context")
}

// NewNoProjectError reports a directory without a project file
func NewNoProjectError(dir string) *BaseError {
	return Newf(NoProjectErrorCode, "no project file found in '%s'", dir).
		WithContext("directory", dir).
		WithSuggestion("Point --project at a project file or its directory")
}

// NewAmbiguousProjectError reports a directory holding several project files
func NewAmbiguousProjectError(dir string, files []string) *BaseError {
	return Newf(AmbiguousProjectErrorCode, "multiple project files found in '%s'", dir).
		WithContext("directory", dir).
		WithContext("files", files).
		WithSuggestion("Point --project at one of the project files")
}

// WrapBuildError wraps a failed build invocation
func WrapBuildError(project string, cause error) *BaseError {
	return Wrap(BuildErrorCode, fmt.Sprintf("failed to build project '%s'", project), cause).
		WithContext("project", project)
}

// WrapGenerateError wraps a failure rendering a file
func WrapGenerateError(item string, cause error) *BaseError {
	return Wrap(GenerationErrorCode, fmt.Sprintf("failed to generate %s", item), cause)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName).
		WithContext("operation", operation)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}
