package application

import "testing"

func TestInflightRegistryAllowsOneMutationPerID(t *testing.T) {
	registry := NewInflightRegistry()

	if !registry.Acquire("inv-1") {
		t.Fatalf("expected first acquire to succeed")
	}
	if registry.Acquire("inv-1") {
		t.Fatalf("expected second acquire on same id to fail")
	}
	if !registry.Acquire("inv-2") {
		t.Fatalf("expected acquire on a different id to succeed")
	}

	registry.Release("inv-1")
	if !registry.Acquire("inv-1") {
		t.Fatalf("expected acquire after release to succeed")
	}
}

func TestInflightRegistryReportsInFlight(t *testing.T) {
	registry := NewInflightRegistry()

	if registry.InFlight("inv-1") {
		t.Fatalf("expected id to be idle before acquire")
	}
	registry.Acquire("inv-1")
	if !registry.InFlight("inv-1") {
		t.Fatalf("expected id to be in flight after acquire")
	}
}
