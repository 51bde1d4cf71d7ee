//go:build !linux

package input

import (
	"context"
	"sync"
)

// EvdevSource is only functional on Linux; elsewhere it never emits.
type EvdevSource struct {
	Glob   string
	Canvas func() (int, int)
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	events chan Event
	once   sync.Once
}

func NewEvdevSource(canvas func() (int, int)) *EvdevSource {
	return &EvdevSource{Canvas: canvas, events: make(chan Event)}
}

func (s *EvdevSource) Start(ctx context.Context) error {
	if s.Logger != nil {
		s.Logger.Infof("input", "evdev not available on this platform")
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	s.once.Do(func() { close(s.events) })
	return nil
}

func (s *EvdevSource) Events() <-chan Event { return s.events }
