// Package tui provides the interactive terminal pieces of plugrow.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/plugrow/plugrow/internal/core"
)

// pickerKeyMap holds the key bindings for the component picker.
type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var pickerKeys = pickerKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
	None:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select none")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "install")),
	Cancel:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// pickerModel is a multi-select list over discovered components. Everything
// starts selected; the user prunes what they don't want.
type pickerModel struct {
	pluginName string
	components []core.Component
	selected   []bool
	cursor     int
	width      int

	confirmed bool
	cancelled bool
}

func newPickerModel(pluginName string, components []core.Component) pickerModel {
	selected := make([]bool, len(components))
	for i := range selected {
		selected[i] = true
	}
	return pickerModel{
		pluginName: pluginName,
		components: components,
		selected:   selected,
		width:      80,
	}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, pickerKeys.Down):
			if m.cursor < len(m.components)-1 {
				m.cursor++
			}
		case key.Matches(msg, pickerKeys.Toggle):
			m.selected[m.cursor] = !m.selected[m.cursor]
		case key.Matches(msg, pickerKeys.All):
			for i := range m.selected {
				m.selected[i] = true
			}
		case key.Matches(msg, pickerKeys.None):
			for i := range m.selected {
				m.selected[i] = false
			}
		case key.Matches(msg, pickerKeys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Cancel):
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.confirmed || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Select components of %s to install", m.pluginName)))
	b.WriteString("\n\n")

	for i, c := range m.components {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		checkbox := "[ ]"
		if m.selected[i] {
			checkbox = "[x]"
		}

		line := fmt.Sprintf("%s %s %s", checkbox, typeStyle.Render(string(c.Type)), c.Name)
		if m.selected[i] {
			line = selectedStyle.Render(line)
		}

		row := cursor + line + dimStyle.Render("  "+c.TargetName)
		b.WriteString(ansi.Truncate(row, max(m.width-1, 20), "…"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space toggle · a all · n none · enter install · esc cancel"))
	return b.String()
}

// selection returns the components left selected, in input order.
func (m pickerModel) selection() []core.Component {
	var picked []core.Component
	for i, c := range m.components {
		if m.selected[i] {
			picked = append(picked, c)
		}
	}
	return picked
}

// PickComponents runs the interactive component picker. ok is false when
// the user cancelled; the caller treats that as a benign skip.
func PickComponents(pluginName string, components []core.Component) (picked []core.Component, ok bool, err error) {
	p := tea.NewProgram(newPickerModel(pluginName, components))
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("running component picker: %w", err)
	}

	m := final.(pickerModel)
	if m.cancelled {
		return nil, false, nil
	}
	return m.selection(), true, nil
}
