package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdineen/outgo/internal/auth"
)

// GateState is where the auth gate stands: unresolved, or resolved one way
// or the other. Nothing behind the gate renders until it leaves GatePending.
type GateState int

const (
	GatePending GateState = iota
	GateSignedOut
	GateSignedIn
)

// AccountChangedMsg is delivered whenever the session's account changes,
// including once at startup with the initial state.
type AccountChangedMsg struct {
	Account *auth.Account
}

// Gate bridges the session's subscription callback into the bubbletea loop.
// The callback pushes onto a channel; Watch turns channel receives into
// messages, re-arming itself after each one.
type Gate struct {
	state GateState
	ch    chan *auth.Account

	unsubscribe func()
}

func NewGate(gw auth.Gateway) *Gate {
	g := &Gate{ch: make(chan *auth.Account, 8)}
	g.unsubscribe = gw.OnAccountChanged(func(acct *auth.Account) {
		g.ch <- acct
	})

	return g
}

// Watch waits for the next account change. Run the returned command again
// after every AccountChangedMsg to keep the subscription flowing.
func (g *Gate) Watch() tea.Cmd {
	return func() tea.Msg {
		return AccountChangedMsg{Account: <-g.ch}
	}
}

// Apply records the change and reports the new gate state.
func (g *Gate) Apply(msg AccountChangedMsg) GateState {
	if msg.Account != nil {
		g.state = GateSignedIn
	} else {
		g.state = GateSignedOut
	}

	return g.state
}

func (g *Gate) State() GateState { return g.state }

// Close drops the session subscription.
func (g *Gate) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}
