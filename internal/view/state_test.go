package view

import "testing"

func TestInitial(t *testing.T) {
	s := Initial()
	if !s.PersonTab() || s.LoansTab() || s.AnalyticsTab() || s.ShowAllLoans() || s.ShowLoaneeInfo() {
		t.Fatalf("unexpected initial state: %s", s)
	}
}

func TestTabTransitions(t *testing.T) {
	s := Initial().WithLoansTab(true)
	if !s.LoansTab() || s.AnalyticsTab() {
		t.Fatalf("expected loans tab only, got %s", s)
	}

	s = s.WithAnalyticsTab(true)
	if s.LoansTab() || !s.AnalyticsTab() || s.PersonTab() {
		t.Fatalf("expected analytics tab only, got %s", s)
	}

	s = s.DualPanel()
	if !s.LoansTab() || !s.PersonTab() || s.AnalyticsTab() {
		t.Fatalf("expected dual panel, got %s", s)
	}

	s = s.PersonOnly()
	if !s.PersonTab() || s.LoansTab() || s.AnalyticsTab() {
		t.Fatalf("expected person tab only, got %s", s)
	}
}

func TestTransitionsReturnNewValues(t *testing.T) {
	before := Initial()
	after := before.WithLoansTab(true).WithShowAllLoans(true)
	if before.LoansTab() || before.ShowAllLoans() {
		t.Fatalf("transition changed the original value")
	}
	if !after.LoansTab() || !after.ShowAllLoans() {
		t.Fatalf("transition was lost: %s", after)
	}
}

func TestIndependentSetters(t *testing.T) {
	s := Initial().WithLoansTab(true).WithShowAllLoans(true).WithShowLoaneeInfo(true)

	p := s.WithPersonTab(true)
	if !p.LoansTab() || !p.ShowAllLoans() || !p.ShowLoaneeInfo() || !p.PersonTab() {
		t.Fatalf("person tab setter changed other flags: %s", p)
	}

	off := s.WithShowAllLoans(false).WithShowLoaneeInfo(false)
	if !off.LoansTab() || off.ShowAllLoans() || off.ShowLoaneeInfo() {
		t.Fatalf("filter setters changed tab flags: %s", off)
	}

	hidden := s.WithLoansTab(false)
	if hidden.LoansTab() || !hidden.ShowAllLoans() {
		t.Fatalf("hiding the loans tab changed other flags: %s", hidden)
	}
}

// Every sequence of up to five transitions from the initial state keeps the loans
// and analytics tabs apart.
func TestLoansAndAnalyticsNeverTogether(t *testing.T) {
	transitions := []func(State) State{
		func(s State) State { return s.WithLoansTab(true) },
		func(s State) State { return s.WithLoansTab(false) },
		func(s State) State { return s.WithAnalyticsTab(true) },
		func(s State) State { return s.WithAnalyticsTab(false) },
		func(s State) State { return s.WithPersonTab(true) },
		func(s State) State { return s.WithPersonTab(false) },
		func(s State) State { return s.PersonOnly() },
		func(s State) State { return s.DualPanel() },
		func(s State) State { return s.WithShowAllLoans(true) },
		func(s State) State { return s.WithShowAllLoans(false) },
		func(s State) State { return s.WithShowLoaneeInfo(true) },
		func(s State) State { return s.WithShowLoaneeInfo(false) },
	}

	seen := map[State]bool{}
	frontier := []State{Initial()}
	for depth := 0; depth < 5; depth++ {
		var next []State
		for _, s := range frontier {
			if seen[s] {
				continue
			}
			seen[s] = true
			if s.LoansTab() && s.AnalyticsTab() {
				t.Fatalf("reached invalid state %s", s)
			}
			for _, tr := range transitions {
				next = append(next, tr(s))
			}
		}
		frontier = next
	}
	for _, s := range frontier {
		if s.LoansTab() && s.AnalyticsTab() {
			t.Fatalf("reached invalid state %s", s)
		}
	}
}
