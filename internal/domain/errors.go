package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDashboardNotFound     = errors.New("dashboard not found")
	ErrDocumentNotReviewable = errors.New("document is not pending review")
	ErrReviewClosed          = errors.New("review session is closed")
	ErrUnknownField          = errors.New("unknown extracted field")
	ErrStaleReviewTarget     = errors.New("review target changed before result arrived")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrDownloadFailed        = errors.New("file download from storage failed")
	ErrShareTokenInvalid     = errors.New("share token is invalid or expired")
	ErrStatusIndexBackward   = errors.New("message status index may only advance")
)
