package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
)

// pagedContent is the remote paging shape shared by product and user lists.
type pagedContent[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

func (c *Client) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/category", nil, nil, &categories, false); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetProductsByCategory pages from zero; the caller owns the 1-based shift.
func (c *Client) GetProductsByCategory(ctx context.Context, categoryID int64, pageZeroBased int) (*domain.ProductBatch, error) {
	path := fmt.Sprintf("/category/%d/product", categoryID)

	var page pagedContent[domain.Product]
	if err := c.do(ctx, http.MethodGet, path, pageQuery(pageZeroBased, c.pageSize), nil, &page, false); err != nil {
		return nil, err
	}
	return &domain.ProductBatch{Products: page.Content, TotalPages: page.TotalPages}, nil
}

func (c *Client) SearchProducts(ctx context.Context, req domain.SearchRequest) (*domain.ProductBatch, error) {
	q := url.Values{}
	q.Set("text", req.Keyword)
	q.Set("page", fmt.Sprint(req.Page))
	q.Set("size", fmt.Sprint(c.pageSize))
	if req.CategoryID != 0 {
		q.Set("categoryId", fmt.Sprint(req.CategoryID))
	}
	if req.SubCategoryID != 0 {
		q.Set("subCategoryId", fmt.Sprint(req.SubCategoryID))
	}
	if req.SortBy != "" {
		q.Set("sortBy", string(req.SortBy))
	}

	var page pagedContent[domain.Product]
	if err := c.do(ctx, http.MethodGet, "/product", q, nil, &page, false); err != nil {
		return nil, err
	}
	return &domain.ProductBatch{Products: page.Content, TotalPages: page.TotalPages}, nil
}
