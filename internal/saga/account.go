package saga

import (
	"context"
	"sync"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

// Account serves the authenticated profile and admin intents. Same policy
// as the catalog loops: every request is served, failures are reported and
// swallowed, the loop re-arms. Token rotation happens inside the gateway
// on every one of these calls.
type Account struct {
	bus    *intent.Bus
	gw     domain.AccountGateway
	log    logger.Logger
	report Reporter

	wg sync.WaitGroup
}

func NewAccount(bus *intent.Bus, gw domain.AccountGateway, log logger.Logger, report Reporter) *Account {
	return &Account{
		bus:    bus,
		gw:     gw,
		log:    log,
		report: report,
	}
}

func (a *Account) Run(ctx context.Context) error {
	sub := a.bus.Subscribe(
		intent.FetchProfile, intent.ChangePassword, intent.RequestUpgrade,
		intent.UpgradeUser, intent.DowngradeUser,
		intent.RequestSellerList, intent.RequestUpgradeList,
		intent.WatchProduct, intent.RequestWatchList,
	)
	a.log.Info("account routine started")

	for {
		it, err := sub.Next(ctx)
		if err != nil {
			a.wg.Wait()
			return err
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.serve(ctx, it); err != nil {
				a.report("account", err)
			}
		}()
	}
}

func (a *Account) serve(ctx context.Context, it intent.Intent) error {
	switch it.Kind {
	case intent.FetchProfile:
		user, err := a.gw.GetProfile(ctx)
		if err != nil {
			return err
		}
		a.publish(it, intent.ProfileLoaded, *user)

	case intent.ChangePassword:
		req, err := intent.PayloadAs[domain.ChangePasswordRequest](it)
		if err != nil {
			return err
		}
		res, err := a.gw.ChangePassword(ctx, req)
		if err != nil {
			return err
		}
		a.publish(it, intent.PasswordChanged, *res)

	case intent.RequestUpgrade:
		res, err := a.gw.SendUpgradeRequest(ctx)
		if err != nil {
			return err
		}
		a.publish(it, intent.UpgradeRequested, *res)

	case intent.UpgradeUser:
		req, err := intent.PayloadAs[domain.RoleChangeRequest](it)
		if err != nil {
			return err
		}
		change, err := a.gw.UpgradeUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		a.publish(it, intent.RoleChanged, *change)

	case intent.DowngradeUser:
		req, err := intent.PayloadAs[domain.RoleChangeRequest](it)
		if err != nil {
			return err
		}
		change, err := a.gw.DowngradeUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		a.publish(it, intent.RoleChanged, *change)

	case intent.RequestSellerList:
		req, err := intent.PayloadAs[domain.PageRequest](it)
		if err != nil {
			return err
		}
		batch, err := a.gw.GetSellerList(ctx, req.CurrentPage-1)
		if err != nil {
			return err
		}
		a.publish(it, intent.SellerListLoaded, domain.Paged[domain.User]{
			Items:       batch.Users,
			CurrentPage: req.CurrentPage,
			TotalPages:  batch.TotalPages,
		})

	case intent.RequestUpgradeList:
		req, err := intent.PayloadAs[domain.PageRequest](it)
		if err != nil {
			return err
		}
		batch, err := a.gw.GetUpgradeList(ctx, req.CurrentPage-1)
		if err != nil {
			return err
		}
		a.publish(it, intent.UpgradeListLoaded, domain.Paged[domain.UpgradeRequest]{
			Items:       batch.Requests,
			CurrentPage: req.CurrentPage,
			TotalPages:  batch.TotalPages,
		})

	case intent.WatchProduct:
		req, err := intent.PayloadAs[domain.WatchProductRequest](it)
		if err != nil {
			return err
		}
		if err := a.gw.WatchProduct(ctx, req.ProductID); err != nil {
			return err
		}
		a.publish(it, intent.ProductWatched, domain.StatusResponse{Status: "OK"})

	case intent.RequestWatchList:
		req, err := intent.PayloadAs[domain.PageRequest](it)
		if err != nil {
			return err
		}
		batch, err := a.gw.GetWatchList(ctx, req.CurrentPage-1)
		if err != nil {
			return err
		}
		a.publish(it, intent.WatchListLoaded, domain.Paged[domain.Product]{
			Items:       batch.Products,
			CurrentPage: req.CurrentPage,
			TotalPages:  batch.TotalPages,
		})
	}

	return nil
}

func (a *Account) publish(trigger intent.Intent, kind intent.Kind, payload any) {
	a.bus.PublishIntent(intent.Intent{Kind: kind, TraceID: trigger.TraceID, Payload: payload})
}
