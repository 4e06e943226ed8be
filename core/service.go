package core

import (
	"context"
	"fmt"
	"log"
)

// Interface is a long running component of serve mode
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry starts services in registration order and stops them in reverse
type Registry struct {
	services []Interface
	started  int
}

func NewRegistry() *Registry {
	return &Registry{
		services: make([]Interface, 0),
	}
}

func (sr *Registry) Register(service Interface) {
	sr.services = append(sr.services, service)
}

// StartAll starts every service. When one fails the services already
// started are stopped again and the error is returned.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, service := range sr.services {
		if err := service.Start(ctx); err != nil {
			log.Printf("Registry: service %d (%T) failed to start, stopping %d started services", i, service, sr.started)
			sr.StopAll()
			return fmt.Errorf("failed to start %T: %w", service, err)
		}
		sr.started = i + 1
	}
	return nil
}

// StopAll stops started services in reverse order
func (sr *Registry) StopAll() {
	for i := sr.started - 1; i >= 0; i-- {
		sr.services[i].Stop()
	}
	sr.started = 0
}
