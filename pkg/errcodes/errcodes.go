package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	TooManyRequests     failure.ErrorCode = "TooManyRequests"

	ProviderNotFound    failure.ErrorCode = "ProviderNotFound"
	InvalidSlug         failure.ErrorCode = "InvalidSlug"
	InvalidCategoryID   failure.ErrorCode = "InvalidCategoryID"
	SnapshotUnavailable failure.ErrorCode = "SnapshotUnavailable"
)
