package kernel

import "strings"

// Contact identifies the person at a courier stop.
type Contact struct {
	Name  string
	Phone string
	Email string
}

// FullName joins first and last names, ignoring empty parts.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// IsEmpty reports whether the contact carries no reachable detail.
func (c Contact) IsEmpty() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == ""
}

// Or returns c when it has any detail, otherwise fallback.
func (c Contact) Or(fallback Contact) Contact {
	if c.IsEmpty() {
		return fallback
	}
	if c.Name == "" {
		c.Name = fallback.Name
	}
	if c.Phone == "" {
		c.Phone = fallback.Phone
	}
	if c.Email == "" {
		c.Email = fallback.Email
	}
	return c
}
