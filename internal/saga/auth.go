package saga

import (
	"context"
	"sync"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
	"github.com/daoleviethoang/friendly-frontend/internal/session"
)

// loginFailedMessage is the one string the UI ever sees for a failed login.
// Transport detail is deliberately discarded; it goes to the reporter only.
const loginFailedMessage = "Error login"

type Auth struct {
	bus    *intent.Bus
	gw     domain.AuthGateway
	store  session.Store
	log    logger.Logger
	report Reporter

	wg sync.WaitGroup
}

func NewAuth(bus *intent.Bus, gw domain.AuthGateway, store session.Store, log logger.Logger, report Reporter) *Auth {
	return &Auth{
		bus:    bus,
		gw:     gw,
		store:  store,
		log:    log,
		report: report,
	}
}

// Run watches login and logout intents until ctx is done. Each login
// attempt gets its own worker: repeated attempts are all served, and a
// second concurrent attempt's tokens simply overwrite the first's,
// whichever resolves last.
func (a *Auth) Run(ctx context.Context) error {
	sub := a.bus.Subscribe(intent.Login, intent.Logout)
	a.log.Info("auth routine started")

	for {
		it, err := sub.Next(ctx)
		if err != nil {
			a.wg.Wait()
			return err
		}

		switch it.Kind {
		case intent.Login:
			a.wg.Add(1)
			go func() {
				defer a.wg.Done()
				a.login(ctx, it)
			}()
		case intent.Logout:
			a.logout(ctx, it)
		}
	}
}

func (a *Auth) login(ctx context.Context, it intent.Intent) {
	req, err := intent.PayloadAs[domain.LoginRequest](it)
	if err != nil {
		a.fail(it, err)
		return
	}

	res, err := a.gw.Login(ctx, req)
	if err != nil || res == nil {
		a.fail(it, err)
		return
	}

	// Write-through before publishing, so the next authenticated call
	// already observes these tokens.
	creds := session.Credentials{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
	if err := a.store.SetCredentials(ctx, creds); err != nil {
		a.fail(it, err)
		return
	}

	a.bus.PublishIntent(intent.Intent{
		Kind:    intent.LoginSuccess,
		TraceID: it.TraceID,
		Payload: *res,
	})
}

func (a *Auth) fail(it intent.Intent, err error) {
	if err != nil {
		a.report("auth", err)
	}
	a.bus.PublishIntent(intent.Intent{
		Kind:    intent.LoginFailure,
		TraceID: it.TraceID,
		Payload: domain.LoginFailure{Message: loginFailedMessage},
	})
}

func (a *Auth) logout(ctx context.Context, it intent.Intent) {
	if err := a.store.Clear(ctx); err != nil {
		a.report("auth", err)
	}
	a.bus.PublishIntent(intent.Intent{Kind: intent.LoggedOut, TraceID: it.TraceID})
}
