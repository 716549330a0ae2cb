package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"finmanager/internal/listview"
)

// column describes one table column of a resource list.
type column[T any] struct {
	title string
	value func(T) string
	// style overrides the theme's cell style when set.
	style func(Theme, T) lipgloss.Style
}

// renderList writes the current page of v as a table followed by a pager line.
func renderList[T listview.Searchable](w io.Writer, theme Theme, noun string, v *listview.View[T], cols []column[T]) {
	if err := v.Err(); err != nil {
		fmt.Fprintln(w, theme.Error.Render(fmt.Sprintf("Failed to load %s: %v", noun, err)))
		return
	}

	rows := v.PageItems()
	if len(rows) == 0 {
		if v.Search() != "" {
			fmt.Fprintln(w, theme.Muted.Render(fmt.Sprintf("No %s match %q.", noun, v.Search())))
		} else {
			fmt.Fprintln(w, theme.Muted.Render(fmt.Sprintf("No %s yet.", noun)))
		}
		return
	}

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.title
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = make([]string, len(cols))
		for j, c := range cols {
			cells[i][j] = c.value(r)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Border).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.Header
			}
			if row >= 0 && row < len(rows) && cols[col].style != nil {
				return cols[col].style(theme, rows[row])
			}
			return theme.Cell
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, theme.Muted.Render(fmt.Sprintf("Page %d of %d · %d of %d %s",
		v.Page()+1, v.PageCount(), len(v.Filtered()), len(v.Items()), noun)))
}

// renderNotice writes the outcome of a mutation.
func renderNotice(w io.Writer, theme Theme, n listview.Notice) {
	if n.Success() {
		fmt.Fprintln(w, theme.Success.Render(n.Message))
		return
	}
	fmt.Fprintln(w, theme.Error.Render(n.Message))
}
