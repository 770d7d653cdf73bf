package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/domain/entity"
)

var (
	bookmarkTitle  string
	bookmarkFolder string
	bookmarkJSON   bool
)

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"bookmarks", "bm"},
	Short:   "Manage bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Bookmark a URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	Args:  cobra.NoArgs,
	RunE:  runBookmarkList,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove <id|url>",
	Short: "Remove a bookmark by ID or URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkRemove,
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRemoveCmd)

	bookmarkAddCmd.Flags().StringVarP(&bookmarkTitle, "title", "t", "", "bookmark title")
	bookmarkAddCmd.Flags().StringVarP(&bookmarkFolder, "folder", "f", "", "folder to file it under")
	bookmarkListCmd.Flags().StringVarP(&bookmarkFolder, "folder", "f", "", "only list this folder")
	bookmarkListCmd.Flags().BoolVar(&bookmarkJSON, "json", false, "output as JSON")
}

type bookmarkRow struct {
	ID     int64  `json:"id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Folder string `json:"folder,omitempty"`
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}

	bm, err := b.Bookmarks.Add(app.Ctx(), usecase.AddBookmarkInput{
		URL:       args[0],
		Title:     bookmarkTitle,
		FolderRef: bookmarkFolder,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.BookmarkLine(bm))
	return nil
}

func runBookmarkList(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}

	bookmarks, err := b.Bookmarks.List(app.Ctx(), bookmarkFolder)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if bookmarkJSON {
		rows := make([]bookmarkRow, 0, len(bookmarks))
		for _, bm := range bookmarks {
			rows = append(rows, bookmarkRow{ID: int64(bm.ID), URL: bm.URL, Title: bm.Title, Folder: bm.FolderRef})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(bookmarks) == 0 {
		fmt.Fprintln(w, app.Theme.Faint.Render("  no bookmarks"))
		return nil
	}
	for _, bm := range bookmarks {
		fmt.Fprintln(w, app.Theme.Faint.Render(fmt.Sprintf("%5d", bm.ID)), app.Theme.BookmarkLine(bm))
	}
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}

	if id, parseErr := strconv.ParseInt(args[0], 10, 64); parseErr == nil {
		err = b.Bookmarks.Remove(app.Ctx(), entity.BookmarkID(id))
	} else {
		err = b.Bookmarks.RemoveByURL(app.Ctx(), args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.Done.Render("Bookmark removed"))
	return nil
}
