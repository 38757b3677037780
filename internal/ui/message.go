package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/adminui/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMembersLoaded MsgKind = iota
)

type membersLoaded struct {
	members []models.Member
	err     error
}

// membersLoadedMsg is the constructor for [MsgMembersLoaded]
func membersLoadedMsg(members []models.Member, err error) Msg {
	return Msg{kind: MsgMembersLoaded, data: membersLoaded{members, err}}
}
