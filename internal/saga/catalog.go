package saga

import (
	"context"
	"sync"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

// Catalog runs three independent watcher loops, one per browse kind. A
// watcher never cancels prior in-flight work of its own kind: firing two
// searches back to back resolves both and publishes both, so a slow first
// call can overwrite a fast second one in the projection. That
// stale-overwrites-fresh window is the documented behavior, not a bug to
// patch with cancellation.
//
// Failures here are swallowed: reported, logged, and the loop re-arms with
// the prior projection state untouched.
type Catalog struct {
	bus    *intent.Bus
	gw     domain.CatalogGateway
	log    logger.Logger
	report Reporter

	wg sync.WaitGroup
}

func NewCatalog(bus *intent.Bus, gw domain.CatalogGateway, log logger.Logger, report Reporter) *Catalog {
	return &Catalog{
		bus:    bus,
		gw:     gw,
		log:    log,
		report: report,
	}
}

func (c *Catalog) RunCategories(ctx context.Context) error {
	return c.watch(ctx, intent.RequestCategories, c.loadCategories)
}

func (c *Catalog) RunProductsByCategory(ctx context.Context) error {
	return c.watch(ctx, intent.RequestProductsByCategory, c.loadProductsByCategory)
}

func (c *Catalog) RunSearch(ctx context.Context) error {
	return c.watch(ctx, intent.SearchProducts, c.search)
}

func (c *Catalog) watch(ctx context.Context, kind intent.Kind, worker func(context.Context, intent.Intent) error) error {
	sub := c.bus.Subscribe(kind)
	c.log.Info("catalog routine started", "kind", kind)

	for {
		it, err := sub.Next(ctx)
		if err != nil {
			c.wg.Wait()
			return err
		}

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := worker(ctx, it); err != nil {
				c.report("catalog", err)
			}
		}()
	}
}

func (c *Catalog) loadCategories(ctx context.Context, it intent.Intent) error {
	categories, err := c.gw.GetCategories(ctx)
	if err != nil {
		return err
	}

	c.bus.PublishIntent(intent.Intent{
		Kind:    intent.CategoriesLoaded,
		TraceID: it.TraceID,
		Payload: categories,
	})
	return nil
}

func (c *Catalog) loadProductsByCategory(ctx context.Context, it intent.Intent) error {
	req, err := intent.PayloadAs[domain.BrowseRequest](it)
	if err != nil {
		return err
	}

	// The UI pages from 1, the remote API from 0.
	batch, err := c.gw.GetProductsByCategory(ctx, req.CategoryID, req.CurrentPage-1)
	if err != nil {
		return err
	}

	c.bus.PublishIntent(intent.Intent{
		Kind:    intent.ProductsByCategoryLoaded,
		TraceID: it.TraceID,
		Payload: domain.Paged[domain.Product]{
			Items:       batch.Products,
			CurrentPage: req.CurrentPage,
			TotalPages:  batch.TotalPages,
		},
	})
	return nil
}

func (c *Catalog) search(ctx context.Context, it intent.Intent) error {
	req, err := intent.PayloadAs[domain.SearchRequest](it)
	if err != nil {
		return err
	}

	batch, err := c.gw.SearchProducts(ctx, req)
	if err != nil {
		return err
	}

	c.bus.PublishIntent(intent.Intent{
		Kind:    intent.SearchResultsLoaded,
		TraceID: it.TraceID,
		Payload: domain.Paged[domain.Product]{
			Items:       batch.Products,
			CurrentPage: req.Page + 1,
			TotalPages:  batch.TotalPages,
		},
	})
	return nil
}
