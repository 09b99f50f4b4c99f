package saga

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

// Runner starts every routine under one group. A routine only returns when
// its context is done, so Wait ends on shutdown, not on call failures.
type Runner struct {
	log logger.Logger

	auth    *Auth
	catalog *Catalog
	forgot  *ForgotPassword
	account *Account
}

func NewRunner(log logger.Logger, auth *Auth, catalog *Catalog, forgot *ForgotPassword, account *Account) *Runner {
	return &Runner{
		log: log,

		auth:    auth,
		catalog: catalog,
		forgot:  forgot,
		account: account,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.auth.Run(gctx) })
	g.Go(func() error { return r.catalog.RunCategories(gctx) })
	g.Go(func() error { return r.catalog.RunProductsByCategory(gctx) })
	g.Go(func() error { return r.catalog.RunSearch(gctx) })
	g.Go(func() error { return r.forgot.Run(gctx) })
	g.Go(func() error { return r.account.Run(gctx) })

	r.log.Info("orchestration routines started")

	return g.Wait()
}
