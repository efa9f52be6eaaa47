// Package models defines the client-side data types returned by the
// authority. Role and DocumentStatus are closed enums: unknown wire values
// are rejected at decode time instead of defaulting silently.
package models

import (
	"encoding/json"
	"fmt"
)

// Role of an authenticated user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch Role(s) {
	case RoleUser, RoleAdmin:
		*r = Role(s)
		return nil
	default:
		return fmt.Errorf("unknown role %q", s)
	}
}

// DocumentStatus reflects the processing state of an uploaded document.
type DocumentStatus string

const (
	StatusProcessing DocumentStatus = "processing"
	StatusProcessed  DocumentStatus = "processed"
	StatusFailed     DocumentStatus = "failed"
)

func (s *DocumentStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch DocumentStatus(v) {
	case StatusProcessing, StatusProcessed, StatusFailed:
		*s = DocumentStatus(v)
		return nil
	default:
		return fmt.Errorf("unknown document status %q", v)
	}
}

// Card is a single generated flashcard.
type Card struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Document is an uploaded source document and its generated cards.
type Document struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Status    DocumentStatus `json:"status"`
	Cards     []Card         `json:"cards"`
}

// User is the authenticated profile as reported by the authority. It is
// never mutated locally; admin token edits go through the authority and the
// returned record replaces the local one.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	TokenBalance int        `json:"tokens"`
	Documents    []Document `json:"documents"`
}

// Document returns the user's document with the given id, if any.
func (u *User) Document(id int64) (*Document, bool) {
	for i := range u.Documents {
		if u.Documents[i].ID == id {
			return &u.Documents[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so session snapshots cannot be mutated by
// their readers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Documents = make([]Document, len(u.Documents))
	for i, d := range u.Documents {
		c.Documents[i] = d
		c.Documents[i].Cards = append([]Card(nil), d.Cards...)
	}
	return &c
}
