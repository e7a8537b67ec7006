// Package view holds the tab and filter flags that decide what the interface shows.
package view

import "fmt"

// State is an immutable set of view flags. Every transition returns a new value.
// The loans and analytics tabs are never shown together.
type State struct {
	loansTab       bool
	analyticsTab   bool
	personTab      bool
	showAllLoans   bool
	showLoaneeInfo bool
}

// Initial is the state at startup: the person tab alone, active loans only.
func Initial() State {
	return State{personTab: true}
}

func (s State) LoansTab() bool { return s.loansTab }
func (s State) AnalyticsTab() bool { return s.analyticsTab }
func (s State) PersonTab() bool { return s.personTab }
func (s State) ShowAllLoans() bool { return s.showAllLoans }
func (s State) ShowLoaneeInfo() bool { return s.showLoaneeInfo }

// WithLoansTab shows the loans tab on its own, or hides it.
func (s State) WithLoansTab(on bool) State {
	if !on {
		s.loansTab = false
		return s
	}
	s.loansTab = true
	s.analyticsTab = false
	s.personTab = false
	return s
}

// WithAnalyticsTab shows the analytics tab on its own, or hides it.
func (s State) WithAnalyticsTab(on bool) State {
	if !on {
		s.analyticsTab = false
		return s
	}
	s.analyticsTab = true
	s.loansTab = false
	s.personTab = false
	return s
}

// WithPersonTab sets the person tab flag alone.
func (s State) WithPersonTab(on bool) State {
	s.personTab = on
	return s
}

// PersonOnly shows the person list and nothing else.
func (s State) PersonOnly() State {
	s.personTab = true
	s.loansTab = false
	s.analyticsTab = false
	return s
}

// DualPanel shows a person next to their loans.
func (s State) DualPanel() State {
	s.personTab = true
	s.loansTab = true
	s.analyticsTab = false
	return s
}

func (s State) WithShowAllLoans(on bool) State {
	s.showAllLoans = on
	return s
}

func (s State) WithShowLoaneeInfo(on bool) State {
	s.showLoaneeInfo = on
	return s
}

func (s State) String() string {
	return fmt.Sprintf("loans=%t analytics=%t person=%t all=%t loanee=%t",
		s.loansTab, s.analyticsTab, s.personTab, s.showAllLoans, s.showLoaneeInfo)
}
