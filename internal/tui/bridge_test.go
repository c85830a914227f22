package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/cutline/internal/remote"
)

type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) { r.msgs = append(r.msgs, msg) }

func TestRemoteBridge(t *testing.T) {
	t.Parallel()

	s := &recordingSender{}
	b := NewRemoteBridge(s)
	b.Dispatch(remote.Command{Type: remote.TypeSeek, SeekMs: 2000})
	b.Info("listening")
	b.Error("boom")

	want := []tea.Msg{
		MsgRemote{Cmd: remote.Command{Type: remote.TypeSeek, SeekMs: 2000}},
		MsgInfo{Msg: "listening"},
		MsgError{Msg: "boom"},
	}
	if diff := cmp.Diff(want, s.msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}
