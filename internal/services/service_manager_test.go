package services

import (
	"context"
	"testing"
)

func TestServiceManager_Lifecycle(t *testing.T) {
	d := newTestDeps(t)
	sm := NewDefaultServiceManager(d.repo, d.publisher, d.logger, d.validator)
	ctx := context.Background()

	t.Run("getters panic before initialize", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic from uninitialized manager")
			}
		}()
		sm.Topic()
	})

	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("Expected health check to fail before initialize")
	}
	if err := sm.Initialize(ctx); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if sm.Topic() == nil || sm.Subtopic() == nil || sm.Question() == nil ||
		sm.Assignment() == nil || sm.Textbook() == nil || sm.Worksheet() == nil {
		t.Fatal("Expected every service after initialize")
	}
	if err := sm.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	if err := sm.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if err := sm.HealthCheck(ctx); err == nil {
		t.Error("Expected health check to fail after shutdown")
	}
}
