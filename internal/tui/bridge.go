package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/cutline/internal/remote"
)

// Sender is the part of *tea.Program the bridges use.
type Sender interface {
	Send(msg tea.Msg)
}

// RemoteBridge implements remote.Dispatcher by forwarding each command as
// a MsgRemote to a BubbleTea program. tea.Program.Send is goroutine-safe,
// so every websocket connection can dispatch concurrently while the engine
// is only touched from the program's update loop.
type RemoteBridge struct {
	program Sender
}

// Verify RemoteBridge satisfies remote.Dispatcher at compile time.
var _ remote.Dispatcher = (*RemoteBridge)(nil)

// NewRemoteBridge creates a bridge that sends messages to the given program.
func NewRemoteBridge(p Sender) *RemoteBridge {
	return &RemoteBridge{program: p}
}

// Dispatch sends MsgRemote.
func (b *RemoteBridge) Dispatch(c remote.Command) {
	b.program.Send(MsgRemote{Cmd: c})
}

// Info sends MsgInfo.
func (b *RemoteBridge) Info(msg string) {
	b.program.Send(MsgInfo{Msg: msg})
}

// Error sends MsgError.
func (b *RemoteBridge) Error(msg string) {
	b.program.Send(MsgError{Msg: msg})
}
