package core

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case StatusMsg:
		m.status = statusLine{text: msg.Text, err: msg.IsErr}
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
	case PopScreenMsg:
		m.screens.Pop()
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		m.SwitchTab(msg.Index)
	case NavigateMsg:
		m.Navigate(msg.Path)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m.broadcast(msg)
	}
	return m, nil
}

// handleKey routes a key: ctrl+c always quits, an open screen takes
// everything else, then global actions, then the active tab.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.screens.Top() != nil {
		return m, m.updateTop(msg)
	}

	scope := m.ActiveScope()
	is := func(action string) bool { return m.keys.IsAction(msg, action, scope) }
	switch {
	case is("quit"):
		m.quitting = true
		return m, tea.Quit
	case is("open-command-palette") && m.OpenCommandModal != nil:
		m.screens.Push(m.OpenCommandModal(&m, scope))
		return m, nil
	case is("open-route-prompt") && m.OpenRouteModal != nil:
		m.screens.Push(m.OpenRouteModal(&m))
		return m, nil
	case is("next-tab"):
		m.cycleTab(1)
		return m, nil
	case is("prev-tab"):
		m.cycleTab(-1)
		return m, nil
	}
	for i := range m.tabs {
		if is("switch-tab-" + strconv.Itoa(i+1)) {
			m.SwitchTab(i)
			return m, nil
		}
	}
	if t := m.ActiveTab(); t != nil {
		return m, t.Update(&m, msg)
	}
	return m, nil
}

// updateTop feeds msg to the top screen and pops it when it asks.
func (m *Model) updateTop(msg tea.Msg) tea.Cmd {
	next, cmd, pop := m.screens.Top().Update(msg)
	if pop {
		m.screens.Pop()
	} else {
		m.screens.ReplaceTop(next)
	}
	return cmd
}

// broadcast hands a non-key message to the top screen and every tab.
func (m Model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	if m.screens.Top() != nil {
		cmds = append(cmds, m.updateTop(msg))
	}
	for _, t := range m.tabs {
		cmds = append(cmds, t.Update(&m, msg))
	}
	return m, tea.Batch(cmds...)
}
