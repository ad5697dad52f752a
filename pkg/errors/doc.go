// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "archive family directory missing",
//	    cause,
//	    map[string]interface{}{
//	        "archive": archiveRoot,
//	        "family":  family.String(),
//	    },
//	)
package errors
