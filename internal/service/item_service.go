package service

import (
	"context"
	"fmt"

	"wishlist-service/internal/apperr"
	"wishlist-service/internal/entity"
	"wishlist-service/internal/repository"
)

type ItemService struct {
	repo       *repository.ItemRepository
	categories *repository.CategoryRepository
	checker    *repository.Checker
	events     *EventPublisher
}

func NewItemService(repo *repository.ItemRepository, categories *repository.CategoryRepository, checker *repository.Checker, events *EventPublisher) *ItemService {
	return &ItemService{repo: repo, categories: categories, checker: checker, events: events}
}

func (s *ItemService) List(ctx context.Context, f entity.ItemFilter) ([]entity.Item, error) {
	return s.repo.List(ctx, f)
}

// Get fetches an item with the sorted list of wishlists referencing it.
func (s *ItemService) Get(ctx context.Context, id int) (*entity.Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("the item doesn't exist")
	}

	refs, err := s.repo.ListWishlistRefs(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Wishlists = refs
	return item, nil
}

// Create inserts an item after checking the (name, link) uniqueness
// invariant and resolving the category name.
func (s *ItemService) Create(ctx context.Context, n entity.NewItem) (*entity.Item, error) {
	exists, err := s.checker.ItemExists(ctx, n.Name, n.Link)
	if err != nil {
		logger.Error().Err(err).Msgf("Error checking item %s", n.Name)
		return nil, err
	}
	if exists {
		return nil, apperr.BadRequest("%s already exists", n.Name)
	}

	category, err := s.checker.Category(ctx, entity.ItemCategory, n.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("%s doesn't exist", n.Category)
	}

	id, err := s.repo.Insert(ctx, n, category.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating item")
		return nil, err
	}

	created, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.events.Publish(ctx, "item", "created", id, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. A provided category name is resolved to
// its id before the clause builder runs.
func (s *ItemService) Update(ctx context.Context, id int, upd entity.ItemUpdate) (*entity.Item, error) {
	fields := upd.Fields()
	if upd.Category != nil {
		category, err := s.checker.Category(ctx, entity.ItemCategory, *upd.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperr.NotFound("%s doesn't exist", *upd.Category)
		}
		fields["categoryId"] = category.ID
	}

	found, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("the item doesn't exist")
	}
	return s.Get(ctx, id)
}

// Delete removes an item and returns a human-readable confirmation.
func (s *ItemService) Delete(ctx context.Context, id int) (string, error) {
	name, found, err := s.repo.Delete(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting item %d", id)
		return "", err
	}
	if !found {
		return "", apperr.NotFound("the item doesn't exist")
	}

	if err := s.events.Publish(ctx, "item", "deleted", id, map[string]any{"id": id, "name": name}); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s has been deleted!", name), nil
}

func (s *ItemService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores a new category, lowercased, rejecting duplicates.
func (s *ItemService) CreateCategory(ctx context.Context, n entity.NewCategory) (*entity.Category, error) {
	existing, err := s.checker.Category(ctx, entity.ItemCategory, n.Category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("%s already exists", n.Category)
	}
	return s.categories.Insert(ctx, n)
}

// ListItemsOfCategory returns every item in a category, failing NotFound
// when the category itself is unknown.
func (s *ItemService) ListItemsOfCategory(ctx context.Context, category string) ([]entity.Item, error) {
	found, err := s.checker.Category(ctx, entity.ItemCategory, category)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperr.NotFound("%s does not exist", category)
	}
	return s.repo.ListByCategory(ctx, found.ID)
}

// DeleteCategory removes a category. Categories still referenced by items
// are blocked rather than cascaded.
func (s *ItemService) DeleteCategory(ctx context.Context, category string) (string, error) {
	return deleteCategory(ctx, s.categories, s.checker, category)
}

// deleteCategory implements the shared block-on-references delete policy
// for both category kinds.
func deleteCategory(ctx context.Context, repo *repository.CategoryRepository, checker *repository.Checker, category string) (string, error) {
	found, err := checker.Category(ctx, repo.Kind(), category)
	if err != nil {
		return "", err
	}
	if found == nil {
		return "", apperr.NotFound("%s doesn't exist", category)
	}

	inUse, err := checker.CategoryInUse(ctx, repo.Kind(), found.ID)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", apperr.BadRequest("%s is still in use", category)
	}

	deleted, err := repo.Delete(ctx, category)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", apperr.NotFound("%s doesn't exist", category)
	}
	return fmt.Sprintf("%s has been deleted!", category), nil
}
