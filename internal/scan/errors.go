package scan

import "errors"

// Pipeline and validation errors. Handlers map these onto HTTP statuses:
// client errors become 400 with the message, pipeline errors become 500
// with a generic body.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("empty file uploaded")
	ErrInvalidMode         = errors.New("mode must be 'cognitive' or 'physical'")

	ErrMissingFeature = errors.New("required feature missing from vision output")
	ErrExtraction     = errors.New("vision backend failed")
	ErrNarration      = errors.New("narration backend failed")
)
