package tui

import (
	"time"

	"github.com/papapumpkin/cutline/internal/arrangement"
	"github.com/papapumpkin/cutline/internal/remote"
)

// MsgFrame drives the frame queue. It is only scheduled while callbacks
// are pending.
type MsgFrame struct {
	Time time.Time
}

// MsgRemote carries a command received by the remote server.
type MsgRemote struct {
	Cmd remote.Command
}

// MsgArrangement carries a reloaded arrangement from the file watcher.
type MsgArrangement struct {
	Change arrangement.Change
}

// MsgInfo shows a transient message below the timeline.
type MsgInfo struct {
	Msg string
}

// MsgError shows an error message below the timeline.
type MsgError struct {
	Msg string
}
