package service

import (
	"context"
	"fmt"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
)

type WishlistService struct {
	repo       *repository.WishlistRepository
	categories *repository.CategoryRepository
	checker    *repository.Checker
	events     *EventPublisher
}

func NewWishlistService(repo *repository.WishlistRepository, categories *repository.CategoryRepository, checker *repository.Checker, events *EventPublisher) *WishlistService {
	return &WishlistService{repo: repo, categories: categories, checker: checker, events: events}
}

func (s *WishlistService) List(ctx context.Context, f entity.WishlistFilter) ([]entity.Wishlist, error) {
	return s.repo.List(ctx, f)
}

// ListByUser returns a user's wishlists sorted by category.
func (s *WishlistService) ListByUser(ctx context.Context, username string) ([]entity.Wishlist, error) {
	return s.repo.ListByUser(ctx, username)
}

// ListByUserAndCategory resolves the category name first, failing NotFound
// when it is unknown.
func (s *WishlistService) ListByUserAndCategory(ctx context.Context, username, category string) ([]entity.Wishlist, error) {
	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("%s doesn't exist", category)
	}
	return s.repo.ListByUserAndCategory(ctx, username, found.ID)
}

// GetByTitle fetches one wishlist by its compound key with its sorted
// member items attached.
func (s *WishlistService) GetByTitle(ctx context.Context, username, category, title string) (*entity.Wishlist, error) {
	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("%s doesn't exist", category)
	}

	wishlist, err := s.repo.GetByKey(ctx, username, found.ID, title)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, apperr.NotFound("%s doesn't exist for %s in the %s category", title, username, category)
	}

	items, err := s.repo.ListItems(ctx, wishlist.ID)
	if err != nil {
		return nil, err
	}
	wishlist.Items = items
	return wishlist, nil
}

// Create inserts a wishlist for a user after resolving the category and
// checking the (username, categoryId, title) uniqueness invariant.
func (s *WishlistService) Create(ctx context.Context, username string, n entity.NewWishlist) (*entity.Wishlist, error) {
	category, err := s.checker.Category(ctx, entity.WishlistCategory, n.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("%s doesn't exist", n.Category)
	}

	existing, err := s.checker.Wishlist(ctx, username, category.ID, n.Title)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking wishlist %s", n.Title)
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("the %s wishlist already exists for %s", n.Title, username)
	}

	created, err := s.repo.Insert(ctx, username, category.ID, n)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating wishlist")
		return nil, err
	}
	created.Category = category.Category
	created.ColorCode = category.ColorCode

	if err := s.events.Publish(ctx, "wishlist", "created", created.ID, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update to the wishlist addressed by its compound
// key. A provided category name is resolved to its id before the clause
// builder runs.
func (s *WishlistService) Update(ctx context.Context, username, category, title string, upd entity.WishlistUpdate) (*entity.Wishlist, error) {
	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("the category %s doesn't exist", category)
	}

	wishlist, err := s.checker.Wishlist(ctx, username, found.ID, title)
	if err != nil {
		return nil, err
	}
	if wishlist == nil {
		return nil, apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	fields := upd.Fields()
	if upd.Category != nil {
		target, err := s.checker.Category(ctx, entity.WishlistCategory, *upd.Category)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, apperr.NotFound("%s doesn't exist", *upd.Category)
		}
		fields["categoryId"] = target.ID
	}

	updated, err := s.repo.Update(ctx, wishlist.ID, fields)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	result, err := s.repo.Get(ctx, wishlist.ID)
	if err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, "wishlist", "updated", wishlist.ID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete resolves the wishlist through its category and compound key before
// removing it.
func (s *WishlistService) Delete(ctx context.Context, username, category, title string) (string, error) {
	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", apperr.NotFound("the category %s doesn't exist", category)
	}

	wishlist, err := s.checker.Wishlist(ctx, username, found.ID, title)
	if err != nil {
		return "", err
	}
	if wishlist == nil {
		return "", apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	deleted, err := s.repo.Delete(ctx, wishlist.ID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting wishlist %d", wishlist.ID)
		return "", err
	}
	if !deleted {
		return "", apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	if err := s.events.Publish(ctx, "wishlist", "deleted", wishlist.ID, wishlist); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s has been deleted!", title), nil
}

// AddItem saves an item on the wishlist addressed by its compound key.
func (s *WishlistService) AddItem(ctx context.Context, username, category, title string, itemID int) (string, error) {
	itemExists, err := s.checker.ItemExistsByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	if !itemExists {
		return "", apperr.NotFound("the item doesn't exist")
	}

	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", apperr.NotFound("the category %s doesn't exist", category)
	}

	wishlist, err := s.checker.Wishlist(ctx, username, found.ID, title)
	if err != nil {
		return "", err
	}
	if wishlist == nil {
		return "", apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	member, err := s.checker.ItemInWishlist(ctx, itemID, wishlist.ID)
	if err != nil {
		return "", err
	}
	if member != nil {
		return "", apperr.BadRequest("the item is already on %s", title)
	}

	if err := s.repo.AddItem(ctx, itemID, wishlist.ID); err != nil {
		logger.Error().Err(err).Msgf("Error adding item %d to wishlist %d", itemID, wishlist.ID)
		return "", err
	}

	if err := s.events.Publish(ctx, "wishlist-item", "added", itemID, entity.WishlistItem{ItemID: itemID, WishlistID: wishlist.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("added item %d to %s", itemID, title), nil
}

// RemoveItem deletes an item from the wishlist addressed by its compound
// key, resolving user, category, wishlist and membership along the way.
func (s *WishlistService) RemoveItem(ctx context.Context, username, category, title string, itemID int) (string, error) {
	userExists, err := s.checker.UserExists(ctx, username)
	if err != nil {
		return "", err
	}
	if !userExists {
		return "", apperr.NotFound("%s doesn't exist", username)
	}

	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", apperr.NotFound("the category %s doesn't exist", category)
	}

	wishlist, err := s.checker.Wishlist(ctx, username, found.ID, title)
	if err != nil {
		return "", err
	}
	if wishlist == nil {
		return "", apperr.NotFound("the wishlist %s doesn't exist", title)
	}

	member, err := s.checker.ItemInWishlist(ctx, itemID, wishlist.ID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", apperr.NotFound("the item is not in %s", title)
	}

	removed, err := s.repo.RemoveItem(ctx, itemID, wishlist.ID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error removing item %d from wishlist %d", itemID, wishlist.ID)
		return "", err
	}
	if !removed {
		return "", apperr.NotFound("the item is not in %s", title)
	}

	if err := s.events.Publish(ctx, "wishlist-item", "removed", itemID, entity.WishlistItem{ItemID: itemID, WishlistID: wishlist.ID}); err != nil {
		return "", err
	}
	return fmt.Sprintf("the item has been deleted from %s", title), nil
}

func (s *WishlistService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores a new wishlist category, lowercased, rejecting
// duplicates.
func (s *WishlistService) CreateCategory(ctx context.Context, n entity.NewCategory) (*entity.Category, error) {
	existing, err := s.checker.Category(ctx, entity.WishlistCategory, n.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("%s already exists", n.Category)
	}
	return s.categories.Insert(ctx, n)
}

// ListWishlistsOfCategory returns every wishlist in a category, failing
// NotFound when the category is unknown.
func (s *WishlistService) ListWishlistsOfCategory(ctx context.Context, category string) ([]entity.Wishlist, error) {
	found, err := s.checker.Category(ctx, entity.WishlistCategory, category)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("%s does not exist", category)
	}
	return s.repo.List(ctx, entity.WishlistFilter{Category: found.Category})
}

// DeleteCategory removes a wishlist category, blocking when wishlists still
// reference it.
func (s *WishlistService) DeleteCategory(ctx context.Context, category string) (string, error) {
	return deleteCategory(ctx, s.categories, s.checker, category)
}
