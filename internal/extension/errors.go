package extension

import "errors"

// Sentinel errors for extension resolution.
var (
	// ErrUnknownExtension indicates no extension is registered under the name.
	ErrUnknownExtension = errors.New("unknown extension")

	// ErrInvalidExtensionName indicates an empty name or one with separators
	// or whitespace.
	ErrInvalidExtensionName = errors.New("invalid extension name")

	// ErrInvalidConfig indicates an extension rejected its configuration.
	ErrInvalidConfig = errors.New("invalid extension config")
)
