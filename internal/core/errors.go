package core

import "errors"

var (
	ErrEmptySessionKey = errors.New("session key is empty")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInferenceFailed = errors.New("inference failed")
)
