package repository_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
)

func TestWishlistRepo_Insert_DuplicateTriple(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	catID := seedWishlistCategory(t, db, "birthday")

	_, err := lists.Insert(ctx, "alice", catID, entity.NewWishlist{Title: "2024"})
	require.NoError(t, err)

	_, err = lists.Insert(ctx, "alice", catID, entity.NewWishlist{Title: "2024"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	// same title under another category is a different wishlist
	other := seedWishlistCategory(t, db, "xmas")
	_, err = lists.Insert(ctx, "alice", other, entity.NewWishlist{Title: "2024"})
	require.NoError(t, err)
}

func TestWishlistRepo_GetByKey(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	catID := seedWishlistCategory(t, db, "birthday")
	id := seedWishlist(t, db, "alice", catID, "2024")

	w, err := lists.GetByKey(ctx, "alice", catID, "2024")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, id, w.ID)
	assert.Equal(t, "birthday", w.Category)

	w, err = lists.GetByKey(ctx, "alice", catID, "2025")
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestWishlistRepo_List_FiltersAndSort(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "bob", false)
	seedUser(t, db, "alice", false)
	birthday := seedWishlistCategory(t, db, "birthday")
	xmas := seedWishlistCategory(t, db, "xmas")
	seedWishlist(t, db, "bob", birthday, "Big Day")
	seedWishlist(t, db, "alice", xmas, "Holidays")
	seedWishlist(t, db, "alice", birthday, "Another Year")

	// default sort is title ascending
	got, err := lists.List(ctx, entity.WishlistFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Another Year", got[0].Title)

	// title substring filter is case-insensitive
	got, err = lists.List(ctx, entity.WishlistFilter{Title: "day"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// category exact match
	got, err = lists.List(ctx, entity.WishlistFilter{Category: "xmas"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Holidays", got[0].Title)

	// orderBy=username remaps the sort
	got, err = lists.List(ctx, entity.WishlistFilter{OrderBy: "username"})
	require.NoError(t, err)
	assert.Equal(t, "alice", got[0].Username)
}

func TestWishlistRepo_Update_Partial(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	catID := seedWishlistCategory(t, db, "birthday")
	id := seedWishlist(t, db, "alice", catID, "2024")

	updated, err := lists.Update(ctx, id, map[string]any{
		"title": "2025", "bannerImg": "http://img/banner",
	})
	require.NoError(t, err)
	assert.True(t, updated)

	w, err := lists.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "2025", w.Title)
	assert.Equal(t, "http://img/banner", w.BannerImg)
	// untouched fields survive
	assert.Equal(t, "alice", w.Username)
	assert.Equal(t, "birthday", w.Category)
}

func TestWishlistRepo_Update_DuplicateTriple(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	catID := seedWishlistCategory(t, db, "birthday")
	seedWishlist(t, db, "alice", catID, "2024")
	id := seedWishlist(t, db, "alice", catID, "2025")

	// renaming onto an existing (username, category, title) triple collides
	_, err := lists.Update(ctx, id, map[string]any{"title": "2024"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestWishlistRepo_Update_Missing(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)

	updated, err := lists.Update(context.Background(), 404, map[string]any{"title": "x"})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestWishlistRepo_AddRemoveItem(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	wlCat := seedWishlistCategory(t, db, "birthday")
	itCat := seedItemCategory(t, db, "electronics")
	wishlistID := seedWishlist(t, db, "alice", wlCat, "2024")
	lamp := seedItem(t, db, "Lamp", "http://shop/lamp", 30, itCat)
	book := seedItem(t, db, "Book", "http://shop/book", 10, itCat)

	require.NoError(t, lists.AddItem(ctx, lamp, wishlistID))
	require.NoError(t, lists.AddItem(ctx, book, wishlistID))

	// duplicate membership is rejected
	err := lists.AddItem(ctx, lamp, wishlistID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))

	items, err := lists.ListItems(ctx, wishlistID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// member items come back sorted by name
	assert.Equal(t, "Book", items[0].Name)
	assert.Equal(t, "Lamp", items[1].Name)

	removed, err := lists.RemoveItem(ctx, lamp, wishlistID)
	require.NoError(t, err)
	assert.True(t, removed)

	items, err = lists.ListItems(ctx, wishlistID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	removed, err = lists.RemoveItem(ctx, lamp, wishlistID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestWishlistRepo_ListByUser_SortedByCategory(t *testing.T) {
	db := newTestDB(t)
	lists := repository.NewWishlistRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", false)
	xmas := seedWishlistCategory(t, db, "xmas")
	birthday := seedWishlistCategory(t, db, "birthday")
	seedWishlist(t, db, "alice", xmas, "Holidays")
	seedWishlist(t, db, "alice", birthday, "2024")

	got, err := lists.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "birthday", got[0].Category)
	assert.Equal(t, "xmas", got[1].Category)
}
