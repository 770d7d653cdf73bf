package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
)

func newSelectFixture() (*usecase.SelectSuggestionUseCase, *fakeContent) {
	content := &fakeContent{}
	tabs := usecase.NewManageTabsUseCase(counterIDs("tab"), content, nil, 10)
	uc := usecase.NewSelectSuggestionUseCase(tabs, usecase.SearchSettings{
		Template:  "https://search.example/?q=%s",
		Shortcuts: map[string]string{"gh": "https://github.com/search?q=%s"},
	})
	return uc, content
}

func TestSelectSuggestionUseCase_Select(t *testing.T) {
	ctx := testContext()

	t.Run("tab switch item switches tab", func(t *testing.T) {
		uc, content := newSelectFixture()
		window := tabsWith(tab("A", "Alpha", "https://a.example"), tab("B", "GitHub", "https://github.com"))

		out, err := uc.Select(ctx, usecase.SelectInput{
			TabList: window,
			Item:    autocomplete.NewTabItem(window.Find("B")),
		})
		require.NoError(t, err)

		assert.Equal(t, usecase.SelectionSwitchTab, out.Action)
		assert.Equal(t, entity.TabID("B"), window.ActiveTabID)
		assert.Equal(t, "https://a.example", window.Find("A").URL)
		assert.Empty(t, content.loaded)
	})

	t.Run("closed tab is a no-op", func(t *testing.T) {
		uc, _ := newSelectFixture()
		window := tabsWith(tab("A", "Alpha", "https://a.example"))
		item := autocomplete.NewTabItem(tab("gone", "Gone", "https://gone.example"))

		out, err := uc.Select(ctx, usecase.SelectInput{TabList: window, Item: item})
		require.NoError(t, err)

		assert.Equal(t, usecase.SelectionNone, out.Action)
		assert.Equal(t, entity.TabID("A"), window.ActiveTabID)
	})

	t.Run("search suggestion goes through the search engine", func(t *testing.T) {
		uc, _ := newSelectFixture()
		window := tabsWith(tab("A", "Alpha", "https://a.example"))

		out, err := uc.Select(ctx, usecase.SelectInput{
			TabList: window,
			Item:    autocomplete.NewSearchSuggestionItem("git rebase onto"),
		})
		require.NoError(t, err)

		assert.Equal(t, usecase.SelectionNavigate, out.Action)
		assert.Equal(t, "https://search.example/?q=git+rebase+onto", out.URL)
		assert.Equal(t, "https://search.example/?q=git+rebase+onto", window.Find("A").URL)
	})

	t.Run("history item navigates the active tab", func(t *testing.T) {
		uc, content := newSelectFixture()
		window := tabsWith(tab("A", "Alpha", "https://a.example"))
		window.SetHandle("A", "view-A")

		out, err := uc.Select(ctx, usecase.SelectInput{
			TabList: window,
			Item:    autocomplete.NewHistoryItem(&entity.HistoryEntry{URL: "https://go.dev", Title: "Go"}),
		})
		require.NoError(t, err)

		assert.Equal(t, usecase.SelectionNavigate, out.Action)
		assert.Equal(t, entity.TabID("A"), out.TabID)
		assert.Equal(t, "https://go.dev", window.Find("A").URL)
		assert.Equal(t, []string{"https://go.dev"}, content.loaded)
	})

	t.Run("bookmark item in an empty window opens a tab", func(t *testing.T) {
		uc, _ := newSelectFixture()
		window := entity.NewTabList()

		out, err := uc.Select(ctx, usecase.SelectInput{
			TabList: window,
			Item:    autocomplete.NewBookmarkItem(&entity.Bookmark{URL: "https://go.dev", Title: "Go"}),
		})
		require.NoError(t, err)

		assert.Equal(t, usecase.SelectionNavigate, out.Action)
		require.Equal(t, 1, window.Count())
		assert.Equal(t, out.TabID, window.ActiveTabID)
		assert.Equal(t, "https://go.dev", window.ActiveTab().URL)
	})

	t.Run("requires a tab list", func(t *testing.T) {
		uc, _ := newSelectFixture()
		_, err := uc.Select(ctx, usecase.SelectInput{})
		assert.Error(t, err)
	})
}

func TestSelectSuggestionUseCase_Submit(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "url", text: "go.dev", want: "https://go.dev"},
		{name: "plain text searches", text: "hello world", want: "https://search.example/?q=hello+world"},
		{name: "bang shortcut", text: "!gh voyage", want: "https://github.com/search?q=voyage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newSelectFixture()
			window := tabsWith(tab("A", "Alpha", "https://a.example"))

			out, err := uc.Submit(ctx, window, "", tt.text)
			require.NoError(t, err)

			assert.Equal(t, usecase.SelectionNavigate, out.Action)
			assert.Equal(t, tt.want, out.URL)
		})
	}

	t.Run("blank input does nothing", func(t *testing.T) {
		uc, _ := newSelectFixture()
		window := tabsWith(tab("A", "Alpha", "https://a.example"))

		out, err := uc.Submit(ctx, window, "", "   ")
		require.NoError(t, err)
		assert.Equal(t, usecase.SelectionNone, out.Action)
	})
}

func TestSelectSuggestionUseCase_UpdateSearch(t *testing.T) {
	uc, _ := newSelectFixture()
	uc.UpdateSearch(usecase.SearchSettings{Template: "https://other.example/search?q="})

	got := uc.ResolveURL(autocomplete.NewSearchSuggestionItem("a b"))
	assert.Equal(t, "https://other.example/search?q=a+b", got)
}
