package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Person carries the identity fields shared by everyone in the shop.
type Person struct {
	ID        string
	Name      string
	Email     string
	Status    string
	CreatedAt time.Time
}

func NewPerson(id, name, email string) (Person, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return Person{}, err
	}
	return Person{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     normalized,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NormalizeEmail trims and lowercases email, rejecting anything that does not
// look like local@domain.tld.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(normalized) {
		return "", newValidationError("email", "invalid email address")
	}
	return normalized, nil
}

func (p *Person) ChangeEmail(newEmail string) error {
	normalized, err := NormalizeEmail(newEmail)
	if err != nil {
		return err
	}
	p.Email = normalized
	return nil
}

func (p *Person) DisplayInfo() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Email)
}
