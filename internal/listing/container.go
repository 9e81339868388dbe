// Package listing keeps the provider list page state: the fetched
// collection, the search term and the render mode.
package listing

import (
	"fmt"
	"strings"

	"provider-directory/internal/delivery/dto"
)

type Mode int

const (
	ModeCard Mode = iota
	ModeTable
)

func (m Mode) String() string {
	switch m {
	case ModeCard:
		return "card"
	case ModeTable:
		return "table"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "card", "cards", "grid":
		return ModeCard, nil
	case "table", "list":
		return ModeTable, nil
	default:
		return ModeCard, fmt.Errorf("unknown view mode %q", s)
	}
}

type Container struct {
	providers []dto.ServiceProvider
	term      string
	filtered  []dto.ServiceProvider
	mode      Mode
}

func New(providers []dto.ServiceProvider) *Container {
	c := &Container{providers: append([]dto.ServiceProvider{}, providers...)}
	c.apply()
	return c
}

// Search sets the term and recomputes the filtered view. Matching is a
// case-insensitive substring test on the name.
func (c *Container) Search(term string) {
	c.term = term
	c.apply()
}

func (c *Container) Term() string {
	return c.term
}

// SetMode changes how the filtered view is rendered. The filter is kept.
func (c *Container) SetMode(m Mode) {
	c.mode = m
}

func (c *Container) Mode() Mode {
	return c.mode
}

func (c *Container) Filtered() []dto.ServiceProvider {
	return append([]dto.ServiceProvider{}, c.filtered...)
}

func (c *Container) All() []dto.ServiceProvider {
	return append([]dto.ServiceProvider{}, c.providers...)
}

// Empty reports that the term matched nothing.
func (c *Container) Empty() bool {
	return len(c.filtered) == 0
}

// Add appends a newly created provider.
func (c *Container) Add(p dto.ServiceProvider) {
	c.providers = append(c.providers, p)
	c.apply()
}

func (c *Container) apply() {
	needle := strings.ToLower(c.term)
	c.filtered = make([]dto.ServiceProvider, 0, len(c.providers))
	for _, p := range c.providers {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			c.filtered = append(c.filtered, p)
		}
	}
}
