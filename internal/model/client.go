package model

import (
	"database/sql/driver"
	"fmt"
)

// ClientType classifies a client account.
type ClientType string

const (
	ClientUnknown   ClientType = "unknown"
	ClientAbnormal  ClientType = "abnormal"
	ClientNormal    ClientType = "normal"
	ClientImportant ClientType = "important"
)

// ParseClientType maps a stored value to a ClientType, falling back to ClientUnknown.
func ParseClientType(s string) ClientType {
	switch s {
	case "abnormal":
		return ClientAbnormal
	case "normal":
		return ClientNormal
	case "important":
		return ClientImportant
	default:
		return ClientUnknown
	}
}

// Scan implements sql.Scanner.
func (t *ClientType) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*t = ParseClientType(v)
	case []byte:
		*t = ParseClientType(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClientType", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (t ClientType) Value() (driver.Value, error) {
	return string(t), nil
}

// Client is a customer account. Password holds the bcrypt digest.
type Client struct {
	ID           uint64     `json:"id"`
	Name         string     `json:"name"`
	Password     string     `json:"-"`
	Ctype        ClientType `json:"ctype"`
	Contactor    string     `json:"contactor"`
	ContactorTel string     `json:"contactor_tel"`
	Email        string     `json:"email"`
	Description  string     `json:"description"`
}

// InsertClient is the body for creating a client.
type InsertClient struct {
	Name         string     `json:"name"`
	Password     string     `json:"password"`
	Ctype        ClientType `json:"ctype"`
	Contactor    string     `json:"contactor"`
	ContactorTel string     `json:"contactor_tel"`
	Email        string     `json:"email"`
	Description  string     `json:"description"`
}

// UpdateClient is the body for a partial client update; nil fields keep their value.
type UpdateClient struct {
	ID           uint64      `json:"id"`
	Name         *string     `json:"name"`
	Ctype        *ClientType `json:"ctype"`
	Contactor    *string     `json:"contactor"`
	ContactorTel *string     `json:"contactor_tel"`
	Email        *string     `json:"email"`
	Description  *string     `json:"description"`
}
