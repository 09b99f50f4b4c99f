package saga

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daoleviethoang/friendly-frontend/internal/domain"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
)

const eventually = 2 * time.Second

func awaitIntent(t *testing.T, sub *intent.Subscription) intent.Intent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), eventually)
	defer cancel()

	it, err := sub.Next(ctx)
	require.NoError(t, err)
	return it
}

func expectNoIntent(t *testing.T, sub *intent.Subscription) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if it, err := sub.Next(ctx); err == nil {
		t.Fatalf("expected silence, got %s", it.Kind)
	}
}

// startRoutine runs a saga loop for the duration of the test.
func startRoutine(t *testing.T, run func(context.Context) error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = run(ctx)
	}()

	// Let the routine reach its Subscribe before the test publishes its
	// trigger; otherwise the trigger is lost on a single-CPU scheduler.
	time.Sleep(10 * time.Millisecond)

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(eventually):
			t.Error("routine did not stop")
		}
	})
}

type recordingReporter struct {
	mu       sync.Mutex
	reported []error
	notify   chan struct{}
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{notify: make(chan struct{}, 16)}
}

func (r *recordingReporter) report(_ string, err error) {
	r.mu.Lock()
	r.reported = append(r.reported, err)
	r.mu.Unlock()

	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *recordingReporter) await(t *testing.T) {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(eventually):
		t.Fatal("no failure was reported")
	}
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reported)
}

type fakeAuthGateway struct {
	login func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
}

func (f *fakeAuthGateway) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	return f.login(ctx, req)
}

type fakeCatalogGateway struct {
	categories func(ctx context.Context) ([]domain.Category, error)
	products   func(ctx context.Context, categoryID int64, pageZeroBased int) (*domain.ProductBatch, error)
	search     func(ctx context.Context, req domain.SearchRequest) (*domain.ProductBatch, error)
}

func (f *fakeCatalogGateway) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories(ctx)
}

func (f *fakeCatalogGateway) GetProductsByCategory(ctx context.Context, categoryID int64, pageZeroBased int) (*domain.ProductBatch, error) {
	return f.products(ctx, categoryID, pageZeroBased)
}

func (f *fakeCatalogGateway) SearchProducts(ctx context.Context, req domain.SearchRequest) (*domain.ProductBatch, error) {
	return f.search(ctx, req)
}

type fakeForgotGateway struct {
	getOtp        func(ctx context.Context, req domain.ForgotPasswordRequest) (*domain.StatusResponse, error)
	verifyOtp     func(ctx context.Context, req domain.OtpRequest) (*domain.StatusResponse, error)
	resetPassword func(ctx context.Context, req domain.ResetPasswordRequest) (*domain.StatusResponse, error)
}

func (f *fakeForgotGateway) GetOtp(ctx context.Context, req domain.ForgotPasswordRequest) (*domain.StatusResponse, error) {
	return f.getOtp(ctx, req)
}

func (f *fakeForgotGateway) VerifyOtp(ctx context.Context, req domain.OtpRequest) (*domain.StatusResponse, error) {
	return f.verifyOtp(ctx, req)
}

func (f *fakeForgotGateway) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) (*domain.StatusResponse, error) {
	return f.resetPassword(ctx, req)
}

func statusOK() (*domain.StatusResponse, error) {
	return &domain.StatusResponse{Status: "OK"}, nil
}
