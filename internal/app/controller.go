// Package app owns the report cycle state (report, loading flag, error) and wires form
// submissions to the generator. Views learn about changes through subscriptions.
package app

import (
	"context"
	"sync"

	"github.com/jonathan/income-strategist/internal/logger"
	"github.com/jonathan/income-strategist/internal/types"
)

// GenericError is shown when a failure carries no message of its own.
const GenericError = "An unexpected error occurred while generating the report. Please try again."

// Generator produces a raw report for an input.
type Generator interface {
	Generate(ctx context.Context, input types.UserInput) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, input types.UserInput) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, input types.UserInput) (string, error) {
	return f(ctx, input)
}

// State is the transient state of one report cycle.
type State struct {
	Report    string `json:"report"`
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error"`
}

// Controller holds State and runs submissions.
//
// Overlapping Submit calls are not rejected or cancelled: each one writes its own
// outcome and the last to finish wins. The mutex only keeps individual writes atomic.
type Controller struct {
	gen Generator
	log *logger.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewController creates a Controller with empty state.
func NewController(gen Generator, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		gen:       gen,
		log:       log,
		listeners: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every state change. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Submit runs one report cycle: loading on, error and report cleared, generate,
// record the outcome, loading off. Loading is cleared on every path, including panics
// in the generator. The generator's error is returned as well as recorded in State.
func (c *Controller) Submit(ctx context.Context, input types.UserInput) error {
	c.update(func(s *State) {
		s.IsLoading = true
		s.Error = ""
		s.Report = ""
	})
	defer c.update(func(s *State) { s.IsLoading = false })

	report, err := c.gen.Generate(ctx, input)
	if err != nil {
		c.log.Error("failed to fetch report", "error", err)
		msg := err.Error()
		if msg == "" {
			msg = GenericError
		}
		c.update(func(s *State) { s.Error = msg })
		return err
	}
	c.update(func(s *State) { s.Report = report })
	return nil
}

// Clear drops the current report and error.
func (c *Controller) Clear() {
	c.update(func(s *State) {
		s.Report = ""
		s.Error = ""
	})
}

func (c *Controller) update(mutate func(*State)) {
	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state
	listeners := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
