package services

import (
	"errors"

	"github.com/joshua-takyi/staydesk/internal/models"
)

var (
	ErrNotFound         = models.ErrNotFound
	ErrConflict         = models.ErrAlreadyExists
	ErrActionNotAllowed = errors.New("action not allowed in the current booking state")
	ErrInvalidInput     = errors.New("invalid input")
	ErrForbidden        = errors.New("forbidden")
)
