package errors

import "errors"

var (
	ErrJobNotFound        = errors.New("scrape job not found")
	ErrRunNotFound        = errors.New("scrape run not found")
	ErrInvalidInput       = errors.New("invalid scrape input")
	ErrEmptySelection     = errors.New("retry selection is empty")
	ErrJobNotRunning      = errors.New("scrape job is not running")
	ErrJobAlreadyRunning  = errors.New("scrape job is already running")
	ErrRunAlreadyFinished = errors.New("scrape run already finished")
)
