// Package intent defines the intent stream the client's routines
// communicate over.
package intent

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Kind names one intent. Kinds are globally unique and the payload shape is
// fixed per kind.
type Kind string

const (
	Login        Kind = "login"
	LoginSuccess Kind = "loginSuccess"
	LoginFailure Kind = "loginFailure"
	Logout       Kind = "logout"
	LoggedOut    Kind = "loggedOut"

	RequestCategories         Kind = "requestCategories"
	CategoriesLoaded          Kind = "categoriesLoaded"
	RequestProductsByCategory Kind = "requestProductsByCategory"
	ProductsByCategoryLoaded  Kind = "productsByCategoryLoaded"
	SearchProducts            Kind = "searchProducts"
	SearchResultsLoaded       Kind = "searchResultsLoaded"

	GetOtp           Kind = "getOtp"
	OtpSent          Kind = "otpSent"
	SendOtp          Kind = "sendOtp"
	OtpVerified      Kind = "otpVerified"
	ResetPassword    Kind = "resetPassword"
	PasswordReset    Kind = "passwordReset"
	ForgotPwdFailure Kind = "forgotPwdFailure"

	FetchProfile       Kind = "fetchProfile"
	ProfileLoaded      Kind = "profileLoaded"
	ChangePassword     Kind = "changePassword"
	PasswordChanged    Kind = "passwordChanged"
	RequestUpgrade     Kind = "requestUpgrade"
	UpgradeRequested   Kind = "upgradeRequested"
	UpgradeUser        Kind = "upgradeUser"
	DowngradeUser      Kind = "downgradeUser"
	RoleChanged        Kind = "roleChanged"
	RequestSellerList  Kind = "requestSellerList"
	SellerListLoaded   Kind = "sellerListLoaded"
	RequestUpgradeList Kind = "requestUpgradeList"
	UpgradeListLoaded  Kind = "upgradeListLoaded"
	WatchProduct       Kind = "watchProduct"
	ProductWatched     Kind = "productWatched"
	RequestWatchList   Kind = "requestWatchList"
	WatchListLoaded    Kind = "watchListLoaded"

	BidTick Kind = "bidTick"
)

// Intent is one discrete user or system action. TraceID correlates the
// triggering intent with the result intents and log lines it produced.
type Intent struct {
	Kind    Kind
	TraceID uuid.UUID
	Payload any
}

var ErrBadPayload = errors.New("intent: bad payload")

var validate = validator.New()

// PayloadAs extracts a typed payload and runs its validate tags. Routines
// call this at their boundary so a malformed intent is rejected before any
// remote call, not mid-flow.
func PayloadAs[T any](it Intent) (T, error) {
	v, ok := it.Payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s carries %T, want %T", ErrBadPayload, it.Kind, it.Payload, zero)
	}
	if reflect.ValueOf(v).Kind() == reflect.Struct {
		if err := validate.Struct(v); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: %s: %v", ErrBadPayload, it.Kind, err)
		}
	}
	return v, nil
}
