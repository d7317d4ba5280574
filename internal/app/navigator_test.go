package app

import "testing"

func TestNavigatorHistory(t *testing.T) {
	nav := NewNavigator(nil)
	var changes []View
	nav.OnChange(func(_, to View) { changes = append(changes, to) })

	if nav.Current() != ViewLogin {
		t.Fatalf("expected login, got %s", nav.Current())
	}
	nav.Go(ViewDashboard)
	nav.Go(ViewDashboard)
	nav.Go("productos")
	if got := nav.Back(); got != ViewDashboard {
		t.Fatalf("expected dashboard, got %s", got)
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %v", changes)
	}

	nav.ToLogin()
	if nav.Current() != ViewLogin {
		t.Fatalf("expected login, got %s", nav.Current())
	}
	if got := nav.Back(); got != ViewLogin {
		t.Fatalf("history should be cleared, went back to %s", got)
	}
}
