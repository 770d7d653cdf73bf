// Package model holds the Bubble Tea models behind interactive commands.
package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/cli/styles"
	"github.com/bnema/voyage/internal/domain/autocomplete"
)

// TabView is a display copy of one tab.
type TabView struct {
	ID     string
	Title  string
	URL    string
	Active bool
}

// Core is the browser window the omnibox drives. Methods may block briefly
// while they hop onto the execution context.
type Core interface {
	// Input feeds a keystroke into the suggestion pipeline. publish is
	// called later, from another goroutine, with the surviving result.
	Input(text string, publish func(usecase.SuggestResult))
	Select(item autocomplete.Item) (*usecase.SelectOutput, error)
	Submit(text string) (*usecase.SelectOutput, error)
	NewTab() error
	CloseTab() error
	NextTab() error
	ReopenClosed() error
	BookmarkActive() error
	Tabs() []TabView
}

type suggestionsMsg usecase.SuggestResult

type actionDoneMsg struct {
	status string
	err    error
}

// OmniboxModel is the address field with its suggestion dropdown and a tab strip.
type OmniboxModel struct {
	input textinput.Model
	help  help.Model
	keys  styles.OmniboxKeyMap

	items    []autocomplete.Item
	suffix   string
	selected int
	tabs     []TabView
	status   string
	err      error
	width    int

	results chan usecase.SuggestResult
	core    Core
	theme   *styles.Theme
}

// NewOmniboxModel creates an omnibox bound to core.
func NewOmniboxModel(theme *styles.Theme, core Core) OmniboxModel {
	input := styles.NewAddressInput(theme)
	input.Focus()

	return OmniboxModel{
		input:    input,
		help:     styles.NewStyledHelp(theme),
		keys:     styles.DefaultOmniboxKeyMap(),
		selected: -1,
		tabs:     core.Tabs(),
		width:    80,
		results:  make(chan usecase.SuggestResult, 8),
		core:     core,
		theme:    theme,
	}
}

// Init implements tea.Model.
func (m OmniboxModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForSuggestions())
}

func (m OmniboxModel) waitForSuggestions() tea.Cmd {
	results := m.results
	return func() tea.Msg {
		return suggestionsMsg(<-results)
	}
}

// publish hands a result to the model without ever blocking the execution context.
func (m OmniboxModel) publish(r usecase.SuggestResult) {
	for {
		select {
		case m.results <- r:
			return
		default:
		}
		select {
		case <-m.results:
		default:
		}
	}
}

// Update implements tea.Model.
func (m OmniboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case suggestionsMsg:
		if msg.Query == m.input.Value() {
			m.items = msg.Items
			m.suffix = msg.InlineSuffix
			if m.selected >= len(m.items) {
				m.selected = len(m.items) - 1
			}
		}
		return m, m.waitForSuggestions()

	case actionDoneMsg:
		m.status, m.err = msg.status, msg.err
		m.tabs = m.core.Tabs()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m OmniboxModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected >= 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if m.suffix == "" {
			return m, nil
		}
		m.input.SetValue(m.input.Value() + m.suffix)
		m.input.CursorEnd()
		m.onInputChanged()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.open()

	case key.Matches(msg, m.keys.NewTab):
		return m, m.action("new tab", m.core.NewTab)
	case key.Matches(msg, m.keys.CloseTab):
		return m, m.action("tab closed", m.core.CloseTab)
	case key.Matches(msg, m.keys.NextTab):
		return m, m.action("", m.core.NextTab)
	case key.Matches(msg, m.keys.Reopen):
		return m, m.action("tab reopened", m.core.ReopenClosed)
	case key.Matches(msg, m.keys.Bookmark):
		return m, m.action("bookmarked", m.core.BookmarkActive)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.onInputChanged()
	}
	return m, cmd
}

func (m *OmniboxModel) onInputChanged() {
	m.selected = -1
	m.suffix = ""
	if strings.TrimSpace(m.input.Value()) == "" {
		m.items = nil
	}
	m.core.Input(m.input.Value(), m.publish)
}

// open applies the highlighted suggestion, or the typed text when none is highlighted.
func (m OmniboxModel) open() (tea.Model, tea.Cmd) {
	var (
		out *usecase.SelectOutput
		err error
	)
	if m.selected >= 0 && m.selected < len(m.items) {
		out, err = m.core.Select(m.items[m.selected])
	} else {
		out, err = m.core.Submit(m.input.Value())
	}

	m.err = err
	m.status = ""
	if err == nil && out != nil {
		m.status = describeSelection(out)
		if out.Action != usecase.SelectionNone {
			m.input.SetValue("")
			m.items, m.suffix, m.selected = nil, "", -1
			m.core.Input("", m.publish)
		}
	}
	m.tabs = m.core.Tabs()
	return m, nil
}

func (m OmniboxModel) action(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{status: status, err: fn()}
	}
}

func describeSelection(out *usecase.SelectOutput) string {
	switch out.Action {
	case usecase.SelectionSwitchTab:
		return "switched tab"
	case usecase.SelectionNavigate:
		return "opened " + out.URL
	default:
		return ""
	}
}

// View implements tea.Model.
func (m OmniboxModel) View() string {
	t := m.theme

	field := m.input.View()
	if m.suffix != "" {
		field += t.Faint.Render(m.suffix)
	}

	sections := []string{
		m.renderTabs(),
		t.Field.Render(field),
		t.SuggestionList(m.items, m.selected, m.width),
	}
	if m.err != nil {
		sections = append(sections, t.Failed.Render("Error: "+m.err.Error()))
	} else if m.status != "" {
		sections = append(sections, t.Done.Render(m.status))
	}
	sections = append(sections, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m OmniboxModel) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for _, tab := range m.tabs {
		title := tab.Title
		if title == "" {
			title = tab.URL
		}
		if r := []rune(title); len(r) > 24 {
			title = string(r[:23]) + "…"
		}
		if tab.Active {
			parts = append(parts, m.theme.TabOn.Render(title))
		} else {
			parts = append(parts, m.theme.TabOff.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// Items returns the suggestions on screen.
func (m OmniboxModel) Items() []autocomplete.Item {
	return m.items
}

// Selected returns the highlighted row, -1 for none.
func (m OmniboxModel) Selected() int {
	return m.selected
}

// Value returns the text in the address field.
func (m OmniboxModel) Value() string {
	return m.input.Value()
}

var _ tea.Model = (*OmniboxModel)(nil)
