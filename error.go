package main

import (
	"errors"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrAlreadyRegistered = errors.New("content id already registered")
	ErrNoSelection       = errors.New("selector picked nothing")
)
