package config

import "sync/atomic"

// Current holds the effective Site, plus the error of the load that produced
// it, and lets a reload swap both while requests are reading them.
type Current struct {
	state atomic.Pointer[currentState]
}

type currentState struct {
	site Site
	err  error
}

// NewCurrent creates a holder seeded with site and its load error.
func NewCurrent(site Site, err error) *Current {
	c := &Current{}
	c.Set(site, err)
	return c
}

// Get returns the active configuration.
func (c *Current) Get() Site {
	return c.state.Load().site
}

// Err returns the error of the load behind the active configuration, if any.
func (c *Current) Err() error {
	return c.state.Load().err
}

// Set replaces the active configuration.
func (c *Current) Set(site Site, err error) {
	c.state.Store(&currentState{site: site, err: err})
}
