// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogOpen   Op = "open catalog"
	OpCatalogList   Op = "list products"
	OpProductLoad   Op = "load product"
	OpProductSave   Op = "save product"
	OpProductDelete Op = "delete product"
	OpMediaScan     Op = "scan media directory"
	OpMediaResolve  Op = "resolve media"

	// Image operations
	OpImageLoad   Op = "load image"
	OpImageRender Op = "render image"
	OpCacheOpen   Op = "open frame cache"

	// Initialization
	OpConfigLoad Op = "load config"
	OpLogOpen    Op = "open log file"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
