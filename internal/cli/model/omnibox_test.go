package model

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/cli/styles"
	"github.com/bnema/voyage/internal/domain/autocomplete"
)

type fakeCore struct {
	inputs    []string
	selected  []autocomplete.Item
	submitted []string
	newTabs   int
	tabs      []TabView
	submitErr error
}

func (f *fakeCore) Input(text string, _ func(usecase.SuggestResult)) {
	f.inputs = append(f.inputs, text)
}

func (f *fakeCore) Select(item autocomplete.Item) (*usecase.SelectOutput, error) {
	f.selected = append(f.selected, item)
	if item.Kind == autocomplete.KindTabSwitch {
		return &usecase.SelectOutput{Action: usecase.SelectionSwitchTab, TabID: item.TabID}, nil
	}
	return &usecase.SelectOutput{Action: usecase.SelectionNavigate, URL: item.URL}, nil
}

func (f *fakeCore) Submit(text string) (*usecase.SelectOutput, error) {
	f.submitted = append(f.submitted, text)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &usecase.SelectOutput{Action: usecase.SelectionNavigate, URL: "https://" + text}, nil
}

func (f *fakeCore) NewTab() error {
	f.newTabs++
	f.tabs = append(f.tabs, TabView{ID: "new", URL: "voyage://start", Active: true})
	return nil
}

func (f *fakeCore) CloseTab() error       { return nil }
func (f *fakeCore) NextTab() error        { return nil }
func (f *fakeCore) ReopenClosed() error   { return nil }
func (f *fakeCore) BookmarkActive() error { return nil }
func (f *fakeCore) Tabs() []TabView       { return append([]TabView(nil), f.tabs...) }

func typeText(t *testing.T, m OmniboxModel, text string) OmniboxModel {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(OmniboxModel)
	}
	return m
}

func update(t *testing.T, m OmniboxModel, msg tea.Msg) (OmniboxModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(OmniboxModel), cmd
}

func suggestionItems() []autocomplete.Item {
	return []autocomplete.Item{
		{Kind: autocomplete.KindTabSwitch, Title: "Go", URL: "https://go.dev", TabID: "t2"},
		{Kind: autocomplete.KindHistory, Title: "Go Packages", URL: "https://pkg.go.dev"},
	}
}

func TestOmnibox_TypingFeedsPipeline(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)

	m = typeText(t, m, "go")
	assert.Equal(t, []string{"g", "go"}, core.inputs)
	assert.Equal(t, "go", m.Value())
}

func TestOmnibox_StaleResultsAreIgnored(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)
	m = typeText(t, m, "go")

	m, cmd := update(t, m, suggestionsMsg{Query: "g", Items: suggestionItems()})
	assert.Empty(t, m.Items(), "result for an older query")
	assert.NotNil(t, cmd, "keeps listening")

	m, _ = update(t, m, suggestionsMsg{Query: "go", Items: suggestionItems(), InlineSuffix: ".dev"})
	assert.Len(t, m.Items(), 2)
	assert.Contains(t, m.View(), "switch to tab")
}

func TestOmnibox_SelectHighlightedItem(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)
	m = typeText(t, m, "go")
	m, _ = update(t, m, suggestionsMsg{Query: "go", Items: suggestionItems()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected(), "selection stops at the last row")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, core.selected, 1)
	assert.Equal(t, autocomplete.KindTabSwitch, core.selected[0].Kind)
	assert.Empty(t, m.Value(), "field clears after a selection")
	assert.Empty(t, m.Items())
	assert.Contains(t, m.View(), "switched tab")
}

func TestOmnibox_EnterWithoutSelectionSubmitsText(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)
	m = typeText(t, m, "go.dev")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"go.dev"}, core.submitted)
	assert.Empty(t, core.selected)
	assert.Contains(t, m.View(), "opened https://go.dev")
}

func TestOmnibox_SubmitErrorIsShown(t *testing.T) {
	core := &fakeCore{submitErr: errors.New("no tab list")}
	m := NewOmniboxModel(styles.NewTheme(), core)
	m = typeText(t, m, "x")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "x", m.Value(), "text is kept on failure")
	assert.Contains(t, m.View(), "no tab list")
}

func TestOmnibox_AcceptInlineCompletion(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)
	m = typeText(t, m, "go")
	m, _ = update(t, m, suggestionsMsg{Query: "go", Items: suggestionItems(), InlineSuffix: ".dev"})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "go.dev", m.Value())
	assert.Equal(t, "go.dev", core.inputs[len(core.inputs)-1])
}

func TestOmnibox_TabActions(t *testing.T) {
	core := &fakeCore{}
	m := NewOmniboxModel(styles.NewTheme(), core)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, 1, core.newTabs)

	m, _ = update(t, m, msg)
	assert.Contains(t, m.View(), "new tab")
	assert.Contains(t, m.View(), "voyage://start")
}

func TestOmnibox_PublishNeverBlocks(t *testing.T) {
	m := NewOmniboxModel(styles.NewTheme(), &fakeCore{})
	for i := range 20 {
		m.publish(usecase.SuggestResult{Generation: uint64(i)})
	}

	cmd := m.waitForSuggestions()
	msg := cmd().(suggestionsMsg)
	assert.GreaterOrEqual(t, msg.Generation, uint64(12), "oldest results were dropped")
}
