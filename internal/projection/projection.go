// Package projection maps the intent history onto the state the UI reads.
// Nothing mutates it directly: result intents (and the request intents that
// raise pending flags) are the only inputs, so the view is always a pure
// function of the stream so far.
package projection

import (
	"context"
	"sync"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

type ForgotPasswordState struct {
	Step         domain.FlowStep
	Email        string
	PendingOtp   bool
	ErrorMessage string
}

type State struct {
	CurrentUser  *domain.User
	LoginPending bool
	LoginError   string

	Categories         []domain.Category
	ProductsByCategory domain.Paged[domain.Product]
	SearchResults      domain.Paged[domain.Product]

	ForgotPassword ForgotPasswordState

	Profile     *domain.User
	SellerList  domain.Paged[domain.User]
	UpgradeList domain.Paged[domain.UpgradeRequest]
	WatchList   domain.Paged[domain.Product]
	LastMessage string

	BidTicks map[int64]domain.BidTick
}

type Projection struct {
	sub *intent.Subscription
	log logger.Logger

	mu    sync.RWMutex
	state State
}

func New(bus *intent.Bus, log logger.Logger) *Projection {
	return &Projection{
		sub: bus.Subscribe(
			intent.Login, intent.LoginSuccess, intent.LoginFailure, intent.LoggedOut,
			intent.CategoriesLoaded, intent.ProductsByCategoryLoaded, intent.SearchResultsLoaded,
			intent.GetOtp, intent.OtpSent, intent.SendOtp, intent.OtpVerified,
			intent.PasswordReset, intent.ForgotPwdFailure,
			intent.ProfileLoaded, intent.PasswordChanged, intent.UpgradeRequested,
			intent.RoleChanged, intent.SellerListLoaded, intent.UpgradeListLoaded,
			intent.ProductWatched, intent.WatchListLoaded,
			intent.BidTick,
		),
		log: log,
		state: State{
			ForgotPassword: ForgotPasswordState{Step: domain.StepRequested},
			BidTicks:       make(map[int64]domain.BidTick),
		},
	}
}

// Run applies the stream until ctx is done.
func (p *Projection) Run(ctx context.Context) error {
	for {
		it, err := p.sub.Next(ctx)
		if err != nil {
			return err
		}
		p.Apply(it)
	}
}

// Apply folds one intent into the state. Result intents are applied in
// arrival order, which for concurrently in-flight calls means
// last-resolved-wins.
func (p *Projection) Apply(it intent.Intent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch it.Kind {
	case intent.Login:
		p.state.LoginPending = true
		p.state.LoginError = ""

	case intent.LoginSuccess:
		if res, ok := it.Payload.(domain.LoginResponse); ok {
			user := res.User
			p.state.CurrentUser = &user
			p.state.LoginPending = false
			p.state.LoginError = ""
		}

	case intent.LoginFailure:
		if failure, ok := it.Payload.(domain.LoginFailure); ok {
			p.state.LoginPending = false
			p.state.LoginError = failure.Message
		}

	case intent.LoggedOut:
		p.state.CurrentUser = nil
		p.state.Profile = nil

	case intent.CategoriesLoaded:
		if categories, ok := it.Payload.([]domain.Category); ok {
			p.state.Categories = categories
		}

	case intent.ProductsByCategoryLoaded:
		if page, ok := it.Payload.(domain.Paged[domain.Product]); ok {
			p.state.ProductsByCategory = page
		}

	case intent.SearchResultsLoaded:
		if page, ok := it.Payload.(domain.Paged[domain.Product]); ok {
			p.state.SearchResults = page
		}

	case intent.GetOtp:
		if req, ok := it.Payload.(domain.ForgotPasswordRequest); ok {
			p.state.ForgotPassword.Email = req.Email
		}

	case intent.OtpSent:
		flow := &p.state.ForgotPassword
		flow.Step = domain.ForwardStep(flow.Step, domain.StepOtpSent)
		flow.ErrorMessage = ""

	case intent.SendOtp:
		p.state.ForgotPassword.PendingOtp = true
		p.state.ForgotPassword.ErrorMessage = ""

	case intent.OtpVerified:
		flow := &p.state.ForgotPassword
		flow.Step = domain.ForwardStep(flow.Step, domain.StepOtpVerified)
		flow.PendingOtp = false
		flow.ErrorMessage = ""

	case intent.PasswordReset:
		flow := &p.state.ForgotPassword
		flow.Step = domain.ForwardStep(flow.Step, domain.StepCompleted)
		flow.ErrorMessage = ""

	case intent.ForgotPwdFailure:
		if failure, ok := it.Payload.(domain.FlowFailure); ok {
			p.state.ForgotPassword.ErrorMessage = failure.Message
			p.state.ForgotPassword.PendingOtp = false
		}

	case intent.ProfileLoaded:
		if user, ok := it.Payload.(domain.User); ok {
			p.state.Profile = &user
		}

	case intent.PasswordChanged, intent.UpgradeRequested, intent.ProductWatched:
		if res, ok := it.Payload.(domain.StatusResponse); ok {
			p.state.LastMessage = res.Message
		}

	case intent.RoleChanged:
		if change, ok := it.Payload.(domain.RoleChanged); ok {
			p.state.LastMessage = change.Message
		}

	case intent.SellerListLoaded:
		if page, ok := it.Payload.(domain.Paged[domain.User]); ok {
			p.state.SellerList = page
		}

	case intent.UpgradeListLoaded:
		if page, ok := it.Payload.(domain.Paged[domain.UpgradeRequest]); ok {
			p.state.UpgradeList = page
		}

	case intent.WatchListLoaded:
		if page, ok := it.Payload.(domain.Paged[domain.Product]); ok {
			p.state.WatchList = page
		}

	case intent.BidTick:
		if tick, ok := it.Payload.(domain.BidTick); ok {
			p.state.BidTicks[tick.ProductID] = tick
		}

	default:
		p.log.Debug("projection ignoring intent", "kind", it.Kind)
	}
}

// Snapshot returns a copy safe for the UI to read while routines keep
// publishing.
func (p *Projection) Snapshot() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := p.state

	if p.state.CurrentUser != nil {
		user := *p.state.CurrentUser
		state.CurrentUser = &user
	}
	if p.state.Profile != nil {
		profile := *p.state.Profile
		state.Profile = &profile
	}

	state.BidTicks = make(map[int64]domain.BidTick, len(p.state.BidTicks))
	for id, tick := range p.state.BidTicks {
		state.BidTicks[id] = tick
	}

	return state
}
