// Package roster provides the authoritative list of persons allowed
// to authenticate, with their PIN and administrator flag.
package roster

import (
	"context"
	"errors"
)

type Person struct {
	Name  string
	PIN   string
	Admin bool
}

// Provider returns the current roster. Implementations re-read their
// source on every call; there is no caching contract.
type Provider interface {
	Roster(ctx context.Context) ([]Person, error)
}

var ErrNoAdmin = errors.New("roster has no administrator")

// Find returns the person with the given name, if present.
func Find(people []Person, name string) (Person, bool) {
	for _, p := range people {
		if p.Name == name {
			return p, true
		}
	}
	return Person{}, false
}

// Admin returns the distinguished administrator of the roster.
func Admin(people []Person) (Person, error) {
	for _, p := range people {
		if p.Admin {
			return p, nil
		}
	}
	return Person{}, ErrNoAdmin
}

// Static is a fixed in-memory roster, used in tests and small
// deployments without a workbook.
type Static []Person

func (s Static) Roster(ctx context.Context) ([]Person, error) {
	return s, nil
}
