package projection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

func newProjection() *Projection {
	return New(intent.NewBus(), logger.Nop())
}

func TestLoginFlags(t *testing.T) {
	p := newProjection()

	p.Apply(intent.Intent{Kind: intent.Login})
	state := p.Snapshot()
	require.True(t, state.LoginPending)
	require.Empty(t, state.LoginError)

	p.Apply(intent.Intent{Kind: intent.LoginSuccess, Payload: domain.LoginResponse{
		User: domain.User{ID: 1, Email: "a@b.c"},
	}})
	state = p.Snapshot()
	require.False(t, state.LoginPending)
	require.NotNil(t, state.CurrentUser)
	require.Equal(t, int64(1), state.CurrentUser.ID)

	p.Apply(intent.Intent{Kind: intent.Login})
	p.Apply(intent.Intent{Kind: intent.LoginFailure, Payload: domain.LoginFailure{Message: "Error login"}})
	state = p.Snapshot()
	require.False(t, state.LoginPending)
	require.Equal(t, "Error login", state.LoginError)

	p.Apply(intent.Intent{Kind: intent.LoggedOut})
	require.Nil(t, p.Snapshot().CurrentUser)
}

func TestForgotPasswordFlowState(t *testing.T) {
	p := newProjection()

	p.Apply(intent.Intent{Kind: intent.GetOtp, Payload: domain.ForgotPasswordRequest{Email: "a@b.c"}})
	state := p.Snapshot()
	require.Equal(t, domain.StepRequested, state.ForgotPassword.Step)
	require.Equal(t, "a@b.c", state.ForgotPassword.Email)

	p.Apply(intent.Intent{Kind: intent.OtpSent, Payload: domain.StatusResponse{Status: "OK"}})
	require.Equal(t, domain.StepOtpSent, p.Snapshot().ForgotPassword.Step)

	// Pending goes up on the submit intent itself, before any call resolves.
	p.Apply(intent.Intent{Kind: intent.SendOtp, Payload: domain.OtpRequest{Otp: "123456", Email: "a@b.c"}})
	require.True(t, p.Snapshot().ForgotPassword.PendingOtp)

	// A failure drops pending and fills the error; the step holds. The UI
	// watches exactly this pair of fields.
	p.Apply(intent.Intent{Kind: intent.ForgotPwdFailure, Payload: domain.FlowFailure{Message: "wrong code"}})
	state = p.Snapshot()
	require.False(t, state.ForgotPassword.PendingOtp)
	require.Equal(t, "wrong code", state.ForgotPassword.ErrorMessage)
	require.Equal(t, domain.StepOtpSent, state.ForgotPassword.Step)

	p.Apply(intent.Intent{Kind: intent.SendOtp, Payload: domain.OtpRequest{Otp: "654321", Email: "a@b.c"}})
	p.Apply(intent.Intent{Kind: intent.OtpVerified, Payload: domain.StatusResponse{Status: "OK"}})
	state = p.Snapshot()
	require.False(t, state.ForgotPassword.PendingOtp)
	require.Empty(t, state.ForgotPassword.ErrorMessage)
	require.Equal(t, domain.StepOtpVerified, state.ForgotPassword.Step)

	p.Apply(intent.Intent{Kind: intent.PasswordReset, Payload: domain.StatusResponse{Status: "OK"}})
	require.Equal(t, domain.StepCompleted, p.Snapshot().ForgotPassword.Step)
}

func TestFlowNeverRegresses(t *testing.T) {
	p := newProjection()

	p.Apply(intent.Intent{Kind: intent.OtpSent, Payload: domain.StatusResponse{}})
	p.Apply(intent.Intent{Kind: intent.OtpVerified, Payload: domain.StatusResponse{}})

	// A late otpSent (for example a resend resolving after verification)
	// must not move the wizard backwards.
	p.Apply(intent.Intent{Kind: intent.OtpSent, Payload: domain.StatusResponse{}})
	require.Equal(t, domain.StepOtpVerified, p.Snapshot().ForgotPassword.Step)
}

func TestResultsApplyInArrivalOrder(t *testing.T) {
	p := newProjection()

	fast := domain.Paged[domain.Product]{Items: []domain.Product{{ID: 2}}, CurrentPage: 1, TotalPages: 1}
	slow := domain.Paged[domain.Product]{Items: []domain.Product{{ID: 1}}, CurrentPage: 1, TotalPages: 1}

	p.Apply(intent.Intent{Kind: intent.SearchResultsLoaded, Payload: fast})
	p.Apply(intent.Intent{Kind: intent.SearchResultsLoaded, Payload: slow})

	// Last resolved wins, even when it was the first one issued.
	require.Equal(t, int64(1), p.Snapshot().SearchResults.Items[0].ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	p := newProjection()

	p.Apply(intent.Intent{Kind: intent.BidTick, Payload: domain.BidTick{ProductID: 5, Price: 100}})

	state := p.Snapshot()
	state.BidTicks[5] = domain.BidTick{ProductID: 5, Price: 999}

	require.Equal(t, int64(100), p.Snapshot().BidTicks[5].Price)
}
