package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"finmanager/internal/listview"
)

// listFlags select which slice of a resource list is printed.
type listFlags struct {
	search   string
	page     int
	pageSize int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.search, "search", "s", "", "only show rows containing this text")
	cmd.PersistentFlags().IntVarP(&f.page, "page", "p", 1, "page to show, starting at 1")
	cmd.PersistentFlags().IntVar(&f.pageSize, "page-size", listview.DefaultPageSize, fmt.Sprintf("rows per page, one of %v", listview.PageSizeOptions))
}

// applyListFlags narrows a loaded view. The page is clamped to what is available.
func applyListFlags[T listview.Searchable](v *listview.View[T], f *listFlags) error {
	if err := v.SetPageSize(f.pageSize); err != nil {
		return err
	}
	v.SetSearch(f.search)
	v.SetPage(f.page - 1)
	return nil
}

// loadView fetches the collection behind v. Load failures are shipped to the
// backend log and returned.
func loadView[T listview.Searchable](ctx context.Context, cmd *cobra.Command, a *app, noun string, v *listview.View[T]) error {
	if err := v.Load(ctx); err != nil {
		return a.report(cmd, "Failed to load "+noun, err)
	}
	return nil
}

// mutateAndShow runs op through the view, prints the notice and, on success,
// the refreshed list.
func mutateAndShow[T listview.Searchable](
	cmd *cobra.Command,
	a *app,
	v *listview.View[T],
	f *listFlags,
	noun string,
	cols []column[T],
	op func(ctx context.Context) error,
	success, failure string,
) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	notice := v.Mutate(ctx, op, success, failure)
	renderNotice(out, a.theme, notice)
	if !notice.Success() {
		return a.report(cmd, failure, notice.Err)
	}

	if err := applyListFlags(v, f); err != nil {
		return err
	}
	renderList(out, a.theme, noun, v, cols)
	return nil
}

// findByID returns the first item whose id matches.
func findByID[T any](items []T, id uint, idOf func(T) uint) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", raw)
	}
	return uint(id), nil
}
