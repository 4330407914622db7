// Package errors provides the structured error type used across glass.
//
// Every failure raised by glass itself (unsupported provider, wrong process,
// rejected API key, invalid input) is an [AppError] carrying a
// machine-readable [ErrorCode], a recommended HTTP status, and optional
// details. Errors coming from a backend's own transport are not converted;
// they are wrapped with fmt.Errorf and reach the caller unchanged in kind.
package errors
