package service

import "errors"

// Ошибки операций с записями
var (
	ErrInvalidWorker = errors.New("invalid worker")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time slot")
	ErrEmptySurname  = errors.New("empty surname")
	ErrLongSurname   = errors.New("surname too long")
	ErrSlotTaken     = errors.New("slot already taken")
	ErrNotFound      = errors.New("booking not found")
)
