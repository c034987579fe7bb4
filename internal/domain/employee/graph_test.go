package employee

import "testing"

func TestWouldCreateCycle(t *testing.T) {
	// a reports to b, b reports to c
	chain := map[string]string{"a": "b", "b": "c"}

	cases := []struct {
		name      string
		employee  string
		manager   string
		managerOf map[string]string
		wantCycle bool
	}{
		{"self management", "a", "a", chain, true},
		{"manager up the chain", "a", "c", chain, false},
		{"direct back-reference", "c", "a", chain, true},
		{"mid-chain back-reference", "b", "a", chain, true},
		{"unrelated employee", "x", "b", chain, false},
		{"empty graph", "a", "b", map[string]string{}, false},
		{"pre-existing cycle terminates", "z", "a", map[string]string{"a": "b", "b": "a"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := WouldCreateCycle(c.employee, c.manager, c.managerOf)
			if got != c.wantCycle {
				t.Errorf("WouldCreateCycle(%q, %q) = %v, want %v", c.employee, c.manager, got, c.wantCycle)
			}
		})
	}
}
