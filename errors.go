package md2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrConflictingInput = errors.New("input cannot set both Text and Raw")
	ErrHTMLConversion   = errors.New("HTML conversion failed")
	ErrUnknownEngine    = errors.New("unknown engine")
	ErrInvalidExtension = errors.New("invalid extension registration")
	ErrPoolClosed       = errors.New("converter pool is closed")
	ErrInvalidTimeout   = errors.New("invalid timeout")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPathRewrite    = errors.New("failed to rewrite relative paths")
)
