package model

import (
	"database/sql/driver"
	"fmt"
)

// UserFlag is the permission level of a staff user.
type UserFlag string

const (
	FlagUnknown  UserFlag = "unknown"
	FlagOperator UserFlag = "operator"
	FlagAdmin    UserFlag = "admin"
)

// ParseUserFlag maps a stored value to a UserFlag, falling back to FlagUnknown.
func ParseUserFlag(s string) UserFlag {
	switch s {
	case "operator":
		return FlagOperator
	case "admin":
		return FlagAdmin
	default:
		return FlagUnknown
	}
}

// Scan implements sql.Scanner.
func (f *UserFlag) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*f = ParseUserFlag(v)
	case []byte:
		*f = ParseUserFlag(string(v))
	default:
		return fmt.Errorf("cannot scan %T into UserFlag", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (f UserFlag) Value() (driver.Value, error) {
	return string(f), nil
}

// User is a staff account. Password holds the bcrypt digest and is never serialized.
type User struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Password    string   `json:"-"`
	Flag        UserFlag `json:"flag"`
	Description *string  `json:"description"`
}

// UserDTO is the outward-facing shape of a user.
type UserDTO struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Flag        UserFlag `json:"flag"`
	Description *string  `json:"description"`
}

// DTO strips credential fields from a User.
func (u User) DTO() UserDTO {
	return UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Flag:        u.Flag,
		Description: u.Description,
	}
}

// LoginRequest is the body of a login call, shared by staff and clients.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// InsertUser is the body for creating a staff user.
type InsertUser struct {
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Flag        UserFlag `json:"flag"`
	Description *string  `json:"description"`
}

// UpdateUser is the body for a partial staff-user update; nil fields keep their value.
type UpdateUser struct {
	ID          uint64    `json:"id"`
	Name        *string   `json:"name"`
	Password    *string   `json:"password"`
	Flag        *UserFlag `json:"flag"`
	Description *string   `json:"description"`
}
