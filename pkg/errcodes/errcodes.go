package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Conflict            failure.ErrorCode = "Conflict"

	GiftNotFound         failure.ErrorCode = "GiftNotFound"
	SelfGiftRejected     failure.ErrorCode = "SelfGiftRejected"
	GiftAlreadyFinalized failure.ErrorCode = "GiftAlreadyFinalized"
)
