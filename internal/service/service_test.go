package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-form-keeper/models"
)

// shared fixtures for the service tests

var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

// sequenceIDs hands out predictable ids.
type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequenceIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("gen-%d", s.n)
}

// recordingCleaner collects the paths it is asked to remove.
type recordingCleaner struct {
	mu    sync.Mutex
	paths []string
}

func (c *recordingCleaner) Clean(_ context.Context, _ string, paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, paths...)
}

// recordingNotifier collects the events it is asked to send.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.FormEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event models.FormEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	types := make([]string, 0, len(n.events))
	for _, event := range n.events {
		types = append(types, event.Type)
	}
	return types
}

func textField(name, label string, order *int) models.Field {
	return models.Field{Name: name, Label: label, Type: models.FieldTypeText, Order: order}
}

func strPtr(s string) *string {
	return &s
}
