package service

import (
	"context"
	"fmt"
)

// MonitorService routes requests to the controller of each mode.
type MonitorService struct {
	controllers map[string]*Controller
	order       []string
}

func NewMonitorService(controllers ...*Controller) *MonitorService {
	m := &MonitorService{controllers: make(map[string]*Controller, len(controllers))}
	for _, c := range controllers {
		m.controllers[c.Mode()] = c
		m.order = append(m.order, c.Mode())
	}
	return m
}

func (m *MonitorService) controller(mode string) (*Controller, error) {
	c, ok := m.controllers[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return c, nil
}

func (m *MonitorService) Begin(ctx context.Context, mode string, mobile bool) (SessionStatus, error) {
	c, err := m.controller(mode)
	if err != nil {
		return SessionStatus{}, err
	}
	return c.Begin(ctx, mobile)
}

func (m *MonitorService) Stop(ctx context.Context, mode string, mobile bool) error {
	c, err := m.controller(mode)
	if err != nil {
		return err
	}
	return c.Stop(ctx, mobile)
}

func (m *MonitorService) Status(mode string) (SessionStatus, error) {
	c, err := m.controller(mode)
	if err != nil {
		return SessionStatus{}, err
	}
	return c.Status(), nil
}

// Modes lists the configured mode names in configuration order.
func (m *MonitorService) Modes() []string {
	return append([]string(nil), m.order...)
}

// Shutdown cancels every pending poll timer.
func (m *MonitorService) Shutdown() {
	for _, c := range m.controllers {
		c.Close()
	}
}
