package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxgraph/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RecalculateMsg:
		return m.recalculate()

	case SweepCompleteMsg:
		if msg.Seq != m.seq {
			// overtaken by a newer input change
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
			m.sweep = msg.Sweep
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.sliders[m.focus].Decrement()
		return m.recalculate()

	case key.Matches(msg, m.keys.Right):
		m.sliders[m.focus].Increment()
		return m.recalculate()

	case key.Matches(msg, m.keys.BigLeft):
		m.sliders[m.focus].DecrementBig()
		return m.recalculate()

	case key.Matches(msg, m.keys.BigRight):
		m.sliders[m.focus].IncrementBig()
		return m.recalculate()

	case key.Matches(msg, m.keys.Status):
		return m.toggleFilingStatus()

	case key.Matches(msg, m.keys.Senior):
		m.isSenior = !m.isSenior
		return m.recalculate()

	case key.Matches(msg, m.keys.IRMAA):
		m.showIRMAA = !m.showIRMAA
		return m.recalculate()
	}

	return m, nil
}

func (m *Model) moveFocus(delta int) {
	m.sliders[m.focus].SetFocused(false)
	m.focus = (m.focus + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focus].SetFocused(true)
}

// toggleFilingStatus switches status and resets wages to the new standard deduction
func (m Model) toggleFilingStatus() (tea.Model, tea.Cmd) {
	next := domain.Single
	if m.filingStatus == domain.Single {
		next = domain.MarriedFilingJointly
	}
	wages, err := m.engine.DefaultWages(next)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.filingStatus = next
	m.sliders[sliderWages].SetValue(wages)
	return m.recalculate()
}

func (m Model) recalculate() (tea.Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, recalculateCmd(m.engine, m.Scenario(), m.showIRMAA, m.seq)
}
