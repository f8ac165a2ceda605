package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"

	"provider_map/internal/domain/entity"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/httpx/reply"
	"provider_map/pkg/httpx/req"
	"provider_map/pkg/rest"
)

type categoryService interface {
	RootCategories(ctx context.Context) ([]entity.Category, error)
	Subcategories(ctx context.Context, parentID int64) ([]entity.Category, error)
}

type CategoryServer struct {
	categoryService categoryService
}

func NewCategoryServer(categoryService categoryService) CategoryServer {
	return CategoryServer{
		categoryService: categoryService,
	}
}

type subcategoryParams struct {
	ParentID int64 `validate:"gt=0"`
}

func (s CategoryServer) getCategories(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	categories, err := s.categoryService.RootCategories(ctx)
	if err != nil {
		return fmt.Errorf("categoryService.RootCategories: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Collection[entity.Category]{
		Success: true,
		Data:    categories,
		Total:   len(categories),
	})

	return nil
}

func (s CategoryServer) getSubcategories(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	parentID, err := strconv.ParseInt(chi.URLParam(r, "parentID"), 10, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.ParseInt: %w", err).Error(),
			failure.WithCode(errcodes.InvalidCategoryID),
			failure.WithDescription("parent id must be an integer"),
		)
	}

	params := subcategoryParams{ParentID: parentID}
	if err = req.Validate(ctx, params, errcodes.InvalidCategoryID); err != nil {
		return fmt.Errorf("req.Validate: %w", err)
	}

	categories, err := s.categoryService.Subcategories(ctx, params.ParentID)
	if err != nil {
		return fmt.Errorf("categoryService.Subcategories: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Collection[entity.Category]{
		Success: true,
		Data:    categories,
		Total:   len(categories),
	})

	return nil
}
