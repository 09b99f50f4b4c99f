package domain

import "strings"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

type LoginFailure struct {
	Message string `json:"message"`
}

// FlowFailure is a non-fatal forgot-password step failure. It updates the
// flow's error field; the step does not advance.
type FlowFailure struct {
	Message string `json:"message"`
}

// ForgotPasswordRequest asks the remote side to mail a one-time code.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OtpRequest carries the code back for verification. The UI enforces the
// 6-digit shape before dispatching; the tag is the standalone-reuse guard.
type OtpRequest struct {
	Otp   string `json:"otp" validate:"required,len=6,number"`
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Otp      string `json:"otp" validate:"required,len=6,number"`
	Password string `json:"password" validate:"required,min=8"`
}

// StatusResponse is the generic remote acknowledgement. Message carries the
// remote-provided failure text when Status is not "OK".
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (r StatusResponse) OK() bool {
	switch strings.ToUpper(r.Status) {
	case "", "OK", "SUCCESS":
		return true
	}
	return false
}

// FlowStep is the forgot-password wizard position. Transitions are strictly
// forward; the only re-entry is OtpSent -> OtpSent on an OTP resend.
type FlowStep string

const (
	StepRequested   FlowStep = "REQUESTED"
	StepOtpSent     FlowStep = "OTP_SENT"
	StepOtpVerified FlowStep = "OTP_VERIFIED"
	StepCompleted   FlowStep = "COMPLETED"
)

var stepOrder = map[FlowStep]int{
	StepRequested:   0,
	StepOtpSent:     1,
	StepOtpVerified: 2,
	StepCompleted:   3,
}

// ForwardStep moves to next unless that would regress the flow.
func ForwardStep(current, next FlowStep) FlowStep {
	if current == "" {
		current = StepRequested
	}
	if stepOrder[next] >= stepOrder[current] {
		return next
	}
	return current
}
