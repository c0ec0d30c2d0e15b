package repository

import "errors"

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate слот (дата, специалист, время) уже занят на уровне хранилища
	ErrDuplicate = errors.New("booking slot already exists")
)
