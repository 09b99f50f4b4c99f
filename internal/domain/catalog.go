package domain

type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	SubCategories []SubCategory `json:"subCategories,omitempty"`
}

type SubCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductImage struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
}

type Product struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	CurrentPrice int64          `json:"currentPrice"`
	StepPrice    int64          `json:"stepPrice"`
	QuickPrice   int64          `json:"quickPrice,omitempty"`
	BidCount     int            `json:"bidCount"`
	EndAt        string         `json:"endAt"`
	SubCategory  *SubCategory   `json:"subCategory,omitempty"`
	Images       []ProductImage `json:"images,omitempty"`
	Description  string         `json:"description,omitempty"`
}

// Paged bundles one page of items with paging counters. CurrentPage is
// 1-based on this side of the API even though the remote pages from 0; the
// routine that built the page already applied the +1 shift.
type Paged[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

type SortOption string

const (
	SortByDate  SortOption = "DATE"
	SortByPrice SortOption = "PRICE"
)

type SearchRequest struct {
	Keyword       string     `json:"keyword" validate:"required"`
	CategoryID    int64      `json:"categoryId,omitempty"`
	SubCategoryID int64      `json:"subCategoryId,omitempty"`
	SortBy        SortOption `json:"sortBy,omitempty"`
	Page          int        `json:"page"`
}

// BrowseRequest asks for one page of a category's products. CurrentPage is
// 1-based, the gateway converts before calling out.
type BrowseRequest struct {
	CategoryID  int64 `json:"categoryId" validate:"required"`
	CurrentPage int   `json:"currentPage" validate:"min=1"`
}

// ProductBatch is the raw remote shape before the paging shift is applied.
type ProductBatch struct {
	Products   []Product `json:"products"`
	TotalPages int       `json:"totalPages"`
}

// BidTick is one live price update from the bid feed.
type BidTick struct {
	ProductID int64  `json:"productId"`
	Price     int64  `json:"price"`
	Bidder    string `json:"bidder"`
	BidCount  int    `json:"bidCount"`
}
