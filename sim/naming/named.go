// Package naming gives engine parts validated, dot-separated names.
package naming

import (
	"strings"
)

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

// Name returns the name given at construction.
func (b *NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase. It panics on an invalid name.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)
	return NamedBase{name: name}
}

// NameMustBeValid panics if the name is empty or has an empty token.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	for _, token := range strings.Split(name, ".") {
		if token == "" {
			panic("name " + name + " has an empty token")
		}

		if strings.ContainsAny(token, " \t\n") {
			panic("name " + name + " must not contain white spaces")
		}
	}
}
