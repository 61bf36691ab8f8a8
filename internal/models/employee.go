// Package models defines the data shapes staffdesk exchanges with the
// employee backend, plus the GORM models for local console state.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Gender is the enumerated gender of an employee. Wire values are "M" / "F".
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// ErrInvalidGender is returned by ParseGender for anything but M/F.
var ErrInvalidGender = errors.New("gender must be M or F")

// ParseGender accepts the wire values and their spelled-out forms,
// case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return GenderMale, nil
	case "f", "female":
		return GenderFemale, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// Employee is one staff record as the backend stores it.
// ID is nil until the backend has assigned one on creation.
type Employee struct {
	ID       *int64 `json:"id,omitempty"`
	WorkID   string `json:"workId"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle,omitempty"`
	Gender   Gender `json:"gender"`
	HireDate string `json:"hireDate,omitempty"`
}

// Persisted reports whether the record carries a server-assigned id.
func (e Employee) Persisted() bool { return e.ID != nil }

// HasID reports whether the record is persisted under id.
func (e Employee) HasID(id int64) bool { return e.ID != nil && *e.ID == id }

// IDValue returns the id, or 0 for records not yet persisted.
func (e Employee) IDValue() int64 {
	if e.ID == nil {
		return 0
	}
	return *e.ID
}

// IDPtr is a convenience for building literals with a known id.
func IDPtr(id int64) *int64 { return &id }
