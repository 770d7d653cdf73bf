package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/bootstrap"
	"github.com/bnema/voyage/internal/cli/model"
	"github.com/bnema/voyage/internal/domain/autocomplete"
	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/bnema/voyage/internal/logging"
)

var (
	errWindowGone = errors.New("window is closed")
	errLastTab    = errors.New("last tab stays open; press esc to leave")
	errNoClosed   = errors.New("no recently closed tabs")
)

// WindowCore drives one browser window from the omnibox.
// Every call hops onto the execution context through Browser.Do.
type WindowCore struct {
	ctx     context.Context
	browser *bootstrap.Browser
	window  entity.WindowID
}

// NewWindowCore binds the omnibox to window.
func NewWindowCore(ctx context.Context, b *bootstrap.Browser, window entity.WindowID) *WindowCore {
	return &WindowCore{ctx: ctx, browser: b, window: window}
}

// run executes fn with the window's tab list on the execution context.
func (c *WindowCore) run(fn func(tabs *entity.TabList) error) error {
	var fnErr error
	err := c.browser.Do(c.ctx, func() {
		tabs, ok := c.browser.Windows.Lookup(c.window)
		if !ok {
			fnErr = errWindowGone
			return
		}
		fnErr = fn(tabs)
	})
	if err != nil {
		return err
	}
	return fnErr
}

// Input implements model.Core.
func (c *WindowCore) Input(text string, publish func(usecase.SuggestResult)) {
	err := c.run(func(tabs *entity.TabList) error {
		c.browser.Suggest.Input(c.ctx, text, tabs, publish)
		return nil
	})
	if err != nil {
		logging.FromContext(c.ctx).Debug().Err(err).
			Int64("window", int64(c.window)).
			Msg("input dropped")
	}
}

// Select implements model.Core.
func (c *WindowCore) Select(item autocomplete.Item) (*usecase.SelectOutput, error) {
	var out *usecase.SelectOutput
	err := c.run(func(tabs *entity.TabList) error {
		var err error
		out, err = c.browser.Select.Select(c.ctx, usecase.SelectInput{TabList: tabs, Item: item})
		return err
	})
	return out, err
}

// Submit implements model.Core.
func (c *WindowCore) Submit(text string) (*usecase.SelectOutput, error) {
	var out *usecase.SelectOutput
	err := c.run(func(tabs *entity.TabList) error {
		var err error
		out, err = c.browser.Select.Submit(c.ctx, tabs, "", text)
		return err
	})
	return out, err
}

// NewTab implements model.Core.
func (c *WindowCore) NewTab() error {
	return c.run(func(tabs *entity.TabList) error {
		_, err := c.browser.Tabs.Create(c.ctx, usecase.CreateTabInput{TabList: tabs})
		return err
	})
}

// CloseTab implements model.Core.
func (c *WindowCore) CloseTab() error {
	return c.run(func(tabs *entity.TabList) error {
		out, err := c.browser.Tabs.Close(c.ctx, usecase.CloseTabInput{TabList: tabs, TabID: tabs.ActiveTabID})
		if err != nil {
			return err
		}
		if out.NeedsConfirmation {
			return errLastTab
		}
		return nil
	})
}

// NextTab implements model.Core.
func (c *WindowCore) NextTab() error {
	return c.run(func(tabs *entity.TabList) error {
		c.browser.Tabs.SwitchNext(c.ctx, tabs)
		return nil
	})
}

// ReopenClosed implements model.Core.
func (c *WindowCore) ReopenClosed() error {
	return c.run(func(tabs *entity.TabList) error {
		tab, err := c.browser.Tabs.ReopenLastClosed(c.ctx, tabs)
		if err != nil {
			return err
		}
		if tab == nil {
			return errNoClosed
		}
		return nil
	})
}

// BookmarkActive implements model.Core. The tab is copied on the execution
// context and stored from the calling goroutine.
func (c *WindowCore) BookmarkActive() error {
	var active *entity.Tab
	if err := c.run(func(tabs *entity.TabList) error {
		if tab := tabs.ActiveTab(); tab != nil {
			active = tab.Clone()
		}
		return nil
	}); err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no active tab")
	}
	_, err := c.browser.Bookmarks.BookmarkTab(c.ctx, active)
	return err
}

// Tabs implements model.Core.
func (c *WindowCore) Tabs() []model.TabView {
	var views []model.TabView
	_ = c.run(func(tabs *entity.TabList) error {
		views = make([]model.TabView, 0, tabs.Count())
		for _, tab := range tabs.Tabs {
			views = append(views, model.TabView{
				ID:     string(tab.ID),
				Title:  tab.Title,
				URL:    tab.URL,
				Active: tab.ID == tabs.ActiveTabID,
			})
		}
		return nil
	})
	return views
}

var _ model.Core = (*WindowCore)(nil)
