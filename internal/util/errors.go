package util

import "errors"

var (
	ErrJobNotFound      = errors.New("analysis job not found")
	ErrPermissionDenied = errors.New("permission denied")
)
