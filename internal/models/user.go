package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleGuest = "guest"
	RoleStaff = "staff"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is a portal account. Guests sign themselves up; staff and owner roles
// are granted from the console and only ever read here.
type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name" validate:"required,min=2,max=80"`
	Email       string    `db:"email" json:"email" validate:"required,email"`
	Password    string    `db:"-" json:"password,omitempty" validate:"required,min=8"`
	Role        string    `db:"role" json:"role"`
	PhoneNumber string    `db:"phone_number" json:"phone_number,omitempty" validate:"omitempty,e164"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
