// Package mockerrors provides structured error types for the mocksmith library.
//
// Import path: github.com/mocksmith/mocksmith/mockerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides four core error types:
//
//   - [ImportError]: the whole import failed; carries the offending document location
//   - [ReferenceError]: $ref resolution failures, circular references, path traversal
//   - [ResourceLimitError]: resource exhaustion (depth, size, count limits)
//   - [DispatchError]: malformed dispatcher rules (for example a bad fallback envelope)
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrImport]: matches any [ImportError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrCircularReference]: matches [ReferenceError] with IsCircular=true
//   - [ErrPathTraversal]: matches [ReferenceError] with IsPathTraversal=true
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrDispatch]: matches any [DispatchError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	imp, err := importer.New(importer.WithFilePath("api.yaml"))
//	if errors.Is(err, mockerrors.ErrImport) {
//	    // Whole import aborted; no partial service is available.
//	}
//
// Extract error details with errors.As():
//
//	var refErr *mockerrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("failed to resolve ref: %s\n", refErr.Ref)
//	    if refErr.IsCircular {
//	        // Handle circular reference specifically.
//	    }
//	}
//
// All error types support error chaining via the Cause field and Unwrap().
package mockerrors
