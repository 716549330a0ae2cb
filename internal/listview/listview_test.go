package listview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmanager/internal/models"
)

func categories(names ...string) []models.Category {
	out := make([]models.Category, len(names))
	for i, n := range names {
		out[i] = models.Category{Base: models.Base{ID: uint(i + 1)}, Name: n}
	}
	return out
}

func names(items []models.Category) []string {
	out := make([]string, len(items))
	for i, c := range items {
		out[i] = c.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	items := categories("Groceries", "Rent", "Grocery delivery", "Utilities")
	items[3].Description = "gas and water"

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, []string{"Groceries", "Grocery delivery"}, names(Filter(items, "GROC")))
	})

	t.Run("matches description", func(t *testing.T) {
		assert.Equal(t, []string{"Utilities"}, names(Filter(items, "Water")))
	})

	t.Run("empty term returns everything", func(t *testing.T) {
		assert.Equal(t, names(items), names(Filter(items, "")))
	})

	t.Run("spaces are part of the term", func(t *testing.T) {
		assert.Empty(t, Filter(items, "groceries "))
		assert.Equal(t, []string{"Grocery delivery"}, names(Filter(items, "grocery ")))
		assert.Empty(t, Filter(items, "  "))
	})

	t.Run("result is an ordered subset", func(t *testing.T) {
		for _, term := range []string{"", "r", "e", "zzz", "ie"} {
			got := Filter(items, term)
			j := 0
			for _, g := range got {
				for j < len(items) && items[j].ID != g.ID {
					j++
				}
				require.Less(t, j, len(items), "term %q produced an item out of order or not in the collection", term)
				j++
			}
		}
	})
}

func TestFilter_TransactionNames(t *testing.T) {
	cat := "Groceries"
	views := []models.TransactionView{
		{ID: 1, Description: "weekly shop", CategoryName: &cat},
		{ID: 2, Description: "salary", Currency: "EUR"},
	}

	got := Filter(views, "grocer")
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Len(t, Filter(views, "eur"), 1)
}

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	for _, size := range PageSizeOptions {
		t.Run(fmt.Sprintf("size %d", size), func(t *testing.T) {
			var rebuilt []int
			pages := PageCount(len(items), size)
			for p := 0; p < pages; p++ {
				page := Paginate(items, p, size)
				assert.LessOrEqual(t, len(page), size)
				rebuilt = append(rebuilt, page...)
			}
			assert.Equal(t, items, rebuilt)
			assert.Empty(t, Paginate(items, pages, size))
		})
	}

	assert.Equal(t, 0, PageCount(0, 10))
	assert.Empty(t, Paginate(items, -1, 10))
}

func TestView_LoadAndNavigate(t *testing.T) {
	all := categories("A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "A11", "B1")
	v := New(func(context.Context) ([]models.Category, error) { return all, nil })

	require.NoError(t, v.Load(context.Background()))
	assert.Equal(t, DefaultPageSize, v.PageSize())
	assert.Equal(t, 2, v.PageCount())

	v.SetPage(1)
	assert.Equal(t, []string{"A11", "B1"}, names(v.PageItems()))

	v.SetSearch("a1")
	assert.Equal(t, 0, v.Page(), "search resets the page")
	assert.Equal(t, []string{"A1", "A10", "A11"}, names(v.PageItems()))

	v.SetSearch("")
	v.SetPage(1)
	require.NoError(t, v.SetPageSize(5))
	assert.Equal(t, 0, v.Page(), "page size change resets the page")
	assert.Equal(t, 3, v.PageCount())

	assert.Error(t, v.SetPageSize(7))
	v.SetPage(99)
	assert.Equal(t, 2, v.Page())
}

func TestView_LoadFailure(t *testing.T) {
	calls := 0
	v := New(func(context.Context) ([]models.Category, error) {
		calls++
		if calls == 1 {
			return categories("Rent"), nil
		}
		return nil, errors.New("fetch failed")
	})
	ctx := context.Background()

	require.NoError(t, v.Load(ctx))
	require.Error(t, v.Load(ctx))

	assert.Empty(t, v.Items())
	assert.EqualError(t, v.Err(), "fetch failed")
	assert.False(t, v.Loading())
}

func TestView_MutateRefetches(t *testing.T) {
	store := categories("Groceries", "Rent")
	fetches := 0
	v := New(func(context.Context) ([]models.Category, error) {
		fetches++
		return append([]models.Category(nil), store...), nil
	})
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))

	notice := v.Mutate(ctx, func(context.Context) error {
		store = store[1:]
		return nil
	}, "Category deleted successfully", "Failed to delete category")

	assert.True(t, notice.Success())
	assert.Equal(t, "Category deleted successfully", notice.Message)
	assert.Equal(t, []string{"Rent"}, names(v.Items()))

	notice = v.Mutate(ctx, func(context.Context) error {
		return errors.New("unexpected status 404: Category not found")
	}, "Category deleted successfully", "Failed to delete category")

	assert.False(t, notice.Success())
	assert.Contains(t, notice.Message, "Failed to delete category")
	assert.Equal(t, 3, fetches, "refetch happens even when the mutation fails")
}
