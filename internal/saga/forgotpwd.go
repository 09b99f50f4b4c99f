package saga

import (
	"context"
	"fmt"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
)

// ForgotPassword drives the three-step reset wizard. The routine tracks the
// step itself and refuses intents that would run a step out of order; the
// projection mirrors the same machine from the published intents.
//
// There is no distinct "verification failed" intent. A failed step
// publishes forgotPwdFailure, which drops the pending flag and fills the
// error field; the UI reacts to the pending *value* falling combined with
// the error field, not to a one-shot completion event.
type ForgotPassword struct {
	bus    *intent.Bus
	gw     domain.ForgotPasswordGateway
	log    logger.Logger
	report Reporter

	step domain.FlowStep
}

func NewForgotPassword(bus *intent.Bus, gw domain.ForgotPasswordGateway, log logger.Logger, report Reporter) *ForgotPassword {
	return &ForgotPassword{
		bus:    bus,
		gw:     gw,
		log:    log,
		report: report,

		step: domain.StepRequested,
	}
}

func (f *ForgotPassword) Run(ctx context.Context) error {
	sub := f.bus.Subscribe(intent.GetOtp, intent.SendOtp, intent.ResetPassword)
	f.log.Info("forgot-password routine started")

	for {
		it, err := sub.Next(ctx)
		if err != nil {
			return err
		}

		switch it.Kind {
		case intent.GetOtp:
			f.requestOtp(ctx, it)
		case intent.SendOtp:
			f.verifyOtp(ctx, it)
		case intent.ResetPassword:
			f.resetPassword(ctx, it)
		}
	}
}

// requestOtp serves both step 1 and the resend from OtpSent; they are the
// same transition rule by contract, so they are the same code.
func (f *ForgotPassword) requestOtp(ctx context.Context, it intent.Intent) {
	if f.step != domain.StepRequested && f.step != domain.StepOtpSent {
		f.report("forgot-password", fmt.Errorf("getOtp ignored in step %s", f.step))
		return
	}

	req, err := intent.PayloadAs[domain.ForgotPasswordRequest](it)
	if err != nil {
		f.fail(it, err, "invalid email")
		return
	}

	res, err := f.gw.GetOtp(ctx, req)
	if err != nil {
		f.fail(it, err, remoteMessage(err))
		return
	}
	if !res.OK() {
		f.fail(it, nil, res.Message)
		return
	}

	f.step = domain.ForwardStep(f.step, domain.StepOtpSent)
	f.bus.PublishIntent(intent.Intent{Kind: intent.OtpSent, TraceID: it.TraceID, Payload: *res})
}

func (f *ForgotPassword) verifyOtp(ctx context.Context, it intent.Intent) {
	if f.step != domain.StepOtpSent {
		f.report("forgot-password", fmt.Errorf("sendOtp ignored in step %s", f.step))
		f.fail(it, nil, "no code was requested")
		return
	}

	req, err := intent.PayloadAs[domain.OtpRequest](it)
	if err != nil {
		// The UI checks the 6-digit shape before dispatching, so this
		// only fires when the core is reused standalone.
		f.fail(it, err, "OTP not valid")
		return
	}

	res, err := f.gw.VerifyOtp(ctx, req)
	if err != nil {
		f.fail(it, err, remoteMessage(err))
		return
	}
	if !res.OK() {
		f.fail(it, nil, res.Message)
		return
	}

	f.step = domain.ForwardStep(f.step, domain.StepOtpVerified)
	f.bus.PublishIntent(intent.Intent{Kind: intent.OtpVerified, TraceID: it.TraceID, Payload: *res})
}

func (f *ForgotPassword) resetPassword(ctx context.Context, it intent.Intent) {
	if f.step != domain.StepOtpVerified {
		f.report("forgot-password", fmt.Errorf("resetPassword ignored in step %s", f.step))
		f.fail(it, nil, "code was not verified")
		return
	}

	req, err := intent.PayloadAs[domain.ResetPasswordRequest](it)
	if err != nil {
		f.fail(it, err, "invalid request")
		return
	}

	res, err := f.gw.ResetPassword(ctx, req)
	if err != nil {
		f.fail(it, err, remoteMessage(err))
		return
	}
	if !res.OK() {
		f.fail(it, nil, res.Message)
		return
	}

	f.step = domain.ForwardStep(f.step, domain.StepCompleted)
	f.bus.PublishIntent(intent.Intent{Kind: intent.PasswordReset, TraceID: it.TraceID, Payload: *res})
}

// fail surfaces the remote message verbatim into the flow's error field and
// keeps the step where it is.
func (f *ForgotPassword) fail(it intent.Intent, err error, message string) {
	if err != nil {
		f.report("forgot-password", err)
	}
	f.bus.PublishIntent(intent.Intent{
		Kind:    intent.ForgotPwdFailure,
		TraceID: it.TraceID,
		Payload: domain.FlowFailure{Message: message},
	})
}
