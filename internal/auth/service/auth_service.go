// Package service authenticates collaborators against the roster by
// exact (name, PIN) match. The administrator may additionally log in
// under a configured alias distinct from their roster name.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sfarfano/registro-horas/internal/roster"
)

var ErrBadCredentials = errors.New("invalid name or PIN")

// Identity is the authenticated result handed to the session store.
type Identity struct {
	// Name is the roster name, also used as the entry owner. When
	// the alias was used, this is the admin person's roster name.
	Name  string
	Admin bool
}

type AuthService struct {
	roster     roster.Provider
	adminAlias string
}

func New(ros roster.Provider, adminAlias string) *AuthService {
	return &AuthService{roster: ros, adminAlias: adminAlias}
}

// Authenticate checks the PIN against the roster. PINs are digits
// only; anything else is rejected before the roster is consulted.
func (s *AuthService) Authenticate(ctx context.Context, name, pin string) (*Identity, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" || !allDigits(pin) {
		return nil, ErrBadCredentials
	}

	people, err := s.roster.Roster(ctx)
	if err != nil {
		return nil, err
	}

	if s.adminAlias != "" && name == s.adminAlias {
		admin, err := roster.Admin(people)
		if err != nil {
			return nil, err
		}
		if admin.PIN != pin {
			return nil, ErrBadCredentials
		}
		return &Identity{Name: admin.Name, Admin: true}, nil
	}

	p, ok := roster.Find(people, name)
	if !ok || p.PIN != pin {
		return nil, ErrBadCredentials
	}
	return &Identity{Name: p.Name, Admin: p.Admin}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
