package applifecycle

import "testing"

func TestModuleVersions(t *testing.T) {
	v := ModuleVersions()
	for _, name := range []string{"applifecycle", "lifecycle", "log", "state"} {
		if v[name] == "" {
			t.Errorf("missing version for %s", name)
		}
	}
}

func TestNewCoordinator(t *testing.T) {
	c := NewCoordinator()
	if !c.State().Idle() {
		t.Fatal("new coordinator is not idle")
	}
	if err := c.Created("main"); err != nil {
		t.Fatalf("Created: %v", err)
	}
	if got := c.State().Active; got != "main" {
		t.Errorf("Active = %v, want main", got)
	}
}
