package core

import tea "github.com/charmbracelet/bubbletea"

// Messages the model handles itself instead of broadcasting.
type (
	// StatusMsg replaces the status bar text.
	StatusMsg struct {
		Text  string
		IsErr bool
	}
	PushScreenMsg     struct{ Screen Screen }
	PopScreenMsg      struct{}
	CommandExecuteMsg struct{ CommandID string }
	// TabSwitchMsg activates a tab by position.
	TabSwitchMsg struct{ Index int }
	// NavigateMsg opens the tab routed at Path.
	NavigateMsg struct{ Path string }
)

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// ErrorCmd reports err in the status bar; nil clears it.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

func NavigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
