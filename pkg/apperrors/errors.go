package apperrors

import "errors"

var (
	ErrUnknownView     = errors.New("unknown view")
	ErrMissingDistrict = errors.New("district id is required")
	ErrUnsafeQuery     = errors.New("unsafe query rejected")
	ErrQueryFailed     = errors.New("query failed")
	ErrRendererFailure = errors.New("report renderer failed")
)
