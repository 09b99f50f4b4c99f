package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func nextOrFail(t *testing.T, sub *Subscription) Intent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	it, err := sub.Next(ctx)
	require.NoError(t, err)
	return it
}

func TestWatcherReceivesInPublishOrder(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(SearchProducts)

	bus.Publish(SearchProducts, "first")
	bus.Publish(SearchProducts, "second")
	bus.Publish(SearchProducts, "third")

	require.Equal(t, "first", nextOrFail(t, sub).Payload)
	require.Equal(t, "second", nextOrFail(t, sub).Payload)
	require.Equal(t, "third", nextOrFail(t, sub).Payload)
}

func TestEveryWatcherSeesEveryIntent(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe(Login)
	second := bus.Subscribe(Login)

	published := bus.Publish(Login, "creds")

	got1 := nextOrFail(t, first)
	got2 := nextOrFail(t, second)

	require.Equal(t, "creds", got1.Payload)
	require.Equal(t, "creds", got2.Payload)
	require.Equal(t, published.TraceID, got1.TraceID)
	require.Equal(t, published.TraceID, got2.TraceID)
}

func TestSubscriptionFiltersKinds(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(GetOtp, SendOtp)

	bus.Publish(Login, nil)
	bus.Publish(GetOtp, "a")
	bus.Publish(RequestCategories, nil)
	bus.Publish(SendOtp, "b")

	require.Equal(t, GetOtp, nextOrFail(t, sub).Kind)
	require.Equal(t, SendOtp, nextOrFail(t, sub).Kind)
}

func TestNextSuspendsUntilPublish(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(RequestCategories)

	go func() {
		time.Sleep(20 * time.Millisecond)
		bus.Publish(RequestCategories, nil)
	}()

	it := nextOrFail(t, sub)
	require.Equal(t, RequestCategories, it.Kind)
}

func TestNextReturnsOnContextDone(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(Login)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sub.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPublishIntentKeepsTraceID(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(LoginSuccess)

	trigger := bus.Publish(Login, nil)
	bus.PublishIntent(Intent{Kind: LoginSuccess, TraceID: trigger.TraceID, Payload: "user"})

	require.Equal(t, trigger.TraceID, nextOrFail(t, sub).TraceID)
}

type loginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func TestPayloadAsValidates(t *testing.T) {
	ok := Intent{Kind: Login, Payload: loginPayload{Email: "a@b.com", Password: "pw"}}
	got, err := PayloadAs[loginPayload](ok)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", got.Email)

	wrongType := Intent{Kind: Login, Payload: "oops"}
	_, err = PayloadAs[loginPayload](wrongType)
	require.True(t, errors.Is(err, ErrBadPayload))

	invalid := Intent{Kind: Login, Payload: loginPayload{Email: "not-an-email", Password: "pw"}}
	_, err = PayloadAs[loginPayload](invalid)
	require.True(t, errors.Is(err, ErrBadPayload))
}
