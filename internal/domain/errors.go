package domain

import "errors"

var (
	ErrPlayNotFound     = errors.New("play not found")
	ErrInvalidCursor    = errors.New("invalid cursor")
	ErrInvalidTitle     = errors.New("invalid play title")
	ErrInvalidVideoPath = errors.New("invalid video path")
	ErrQueueDisabled    = errors.New("task queue is disabled")
)
