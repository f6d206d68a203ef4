package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCheckoutFixture(t *testing.T) (*repository.Repository, *MockPaymentProvider, CheckoutService, *entity.Tour, *entity.User) {
	t.Helper()

	repo := newTestRepository()
	provider := NewMockPaymentProvider()
	service := NewCheckoutService(repo, provider, newTestConfig(), testLogger)

	tour := newTestTour(49900)
	require.NoError(t, repo.Tour.Create(context.Background(), tour))

	user := newTestUser()
	require.NoError(t, repo.User.Create(context.Background(), user))

	return repo, provider, service, tour, user
}

func TestCreateCheckoutSession_FreezesTourPrice(t *testing.T) {
	repo, _, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	resp, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(49900), resp.Amount)
	assert.Equal(t, string(entity.PaymentSessionPending), resp.Status)
	assert.NotEmpty(t, resp.CheckoutURL)

	// The price the admin sets afterwards must not leak into the session.
	tour.Price = 4999
	require.NoError(t, repo.Tour.Update(ctx, tour))

	session, err := repo.PaymentSession.FindBySessionID(ctx, resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, int64(49900), session.Amount)
}

func TestCreateCheckoutSession_TourNotFound(t *testing.T) {
	_, _, service, _, user := newCheckoutFixture(t)

	_, err := service.CreateCheckoutSession(context.Background(), user.ID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateCheckoutSession_ProviderDown(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	provider.CreateSessionFn = func(ctx context.Context, req *payment.CreateSessionRequest) (*payment.Session, error) {
		return nil, errors.New("connection refused")
	}

	_, err := service.CreateCheckoutSession(context.Background(), user.ID, tour.ID)
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))

	// No session row without a provider session to back it.
	bookings, err := repo.Booking.FindAll(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestReconcileSession_PendingCreatesNoBooking(t *testing.T) {
	repo, _, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentSessionPending), resp.Status)
	assert.Nil(t, resp.Booking)

	booking, err := repo.Booking.FindBySessionID(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestReconcileSession_ExpiredCreatesNoBooking(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	provider.sessions[created.SessionID].Status = payment.StatusExpired

	resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentSessionExpired), resp.Status)
	assert.Nil(t, resp.Booking)

	session, err := repo.PaymentSession.FindBySessionID(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentSessionExpired, session.Status)
}

func TestReconcileSession_CompleteCreatesBookingOnce(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	provider.sessions[created.SessionID].Status = payment.StatusComplete

	var firstBookingID string
	for i := 0; i < 5; i++ {
		resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
		require.NoError(t, err)
		require.NotNil(t, resp.Booking)
		assert.Equal(t, string(entity.PaymentSessionComplete), resp.Status)
		assert.Equal(t, int64(49900), resp.Booking.Price)
		assert.True(t, resp.Booking.Paid)

		if firstBookingID == "" {
			firstBookingID = resp.Booking.ID
		}
		assert.Equal(t, firstBookingID, resp.Booking.ID)
	}

	count, err := repo.Booking.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Once complete locally, the provider is never consulted again.
	assert.Equal(t, 1, provider.Calls("GetSession"))
}

func TestReconcileSession_BookingRecordsFrozenPrice(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	// Admin slashes the price while the customer is on the provider page.
	tour.Price = 4999
	require.NoError(t, repo.Tour.Update(ctx, tour))

	provider.sessions[created.SessionID].Status = payment.StatusComplete

	resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(49900), resp.Booking.Price)
}

func TestReconcileSession_ConcurrentCallsOneBooking(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	provider.sessions[created.SessionID].Status = payment.StatusComplete

	const numCallers = 10
	var wg sync.WaitGroup
	results := make(chan string, numCallers)

	for i := 0; i < numCallers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
			if err != nil || resp.Booking == nil {
				results <- ""
				return
			}
			results <- resp.Booking.ID
		}()
	}

	wg.Wait()
	close(results)

	ids := make(map[string]bool)
	for id := range results {
		require.NotEmpty(t, id, "every concurrent caller must get the booking")
		ids[id] = true
	}
	assert.Len(t, ids, 1, "all callers must see the same booking")

	count, err := repo.Booking.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReconcileSession_DuplicateInsertReturnsWinner(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)
	provider.sessions[created.SessionID].Status = payment.StatusComplete

	// Simulate losing the insert race: the winner's row lands between our
	// existence check and our insert.
	bookingRepo := repo.Booking.(*MockBookingRepository)
	winner := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TourID:    tour.ID,
		UserID:    user.ID,
		SessionID: created.SessionID,
		Price:     49900,
		Paid:      true,
	}
	bookingRepo.CreateFn = func(ctx context.Context, booking *entity.Booking) error {
		bookingRepo.CreateFn = nil
		bookingRepo.bookings[winner.ID] = winner
		bookingRepo.bySession[winner.SessionID] = winner
		return repository.ErrDuplicateSession
	}

	resp, err := service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, winner.ID.String(), resp.Booking.ID)
}

func TestReconcileSession_AdminReconcilesOthersSession(t *testing.T) {
	repo, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	provider.sessions[created.SessionID].Status = payment.StatusComplete

	admin := newTestUser()
	admin.Base.ID = uuid.New()
	admin.Email = "admin@example.com"
	admin.Role = entity.RoleAdmin
	require.NoError(t, repo.User.Create(ctx, admin))

	// Support staff settle the customer's session; the booking still
	// belongs to the customer.
	resp, err := service.ReconcileSession(ctx, admin.ID, string(entity.RoleAdmin), created.SessionID)
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, user.ID.String(), resp.Booking.UserID)
	assert.Equal(t, int64(49900), resp.Booking.Price)
}

func TestReconcileSession_ForbiddenForOtherUser(t *testing.T) {
	repo, _, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	other := newTestUser()
	other.Base.ID = uuid.New()
	other.Email = "mallory@example.com"
	require.NoError(t, repo.User.Create(ctx, other))

	_, err = service.ReconcileSession(ctx, other.ID, string(entity.RoleUser), created.SessionID)
	require.Error(t, err)
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestReconcileSession_UnknownSession(t *testing.T) {
	_, _, service, _, user := newCheckoutFixture(t)

	_, err := service.ReconcileSession(context.Background(), user.ID, string(entity.RoleUser), "cs_does_not_exist")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReconcileSession_ProviderDown(t *testing.T) {
	_, provider, service, tour, user := newCheckoutFixture(t)
	ctx := context.Background()

	created, err := service.CreateCheckoutSession(ctx, user.ID, tour.ID)
	require.NoError(t, err)

	provider.GetSessionFn = func(ctx context.Context, sessionID string) (*payment.Session, error) {
		return nil, errors.New("connection refused")
	}

	_, err = service.ReconcileSession(ctx, user.ID, string(entity.RoleUser), created.SessionID)
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
}

func TestMapProviderStatus(t *testing.T) {
	assert.Equal(t, entity.PaymentSessionPending, mapProviderStatus(payment.StatusOpen))
	assert.Equal(t, entity.PaymentSessionComplete, mapProviderStatus(payment.StatusComplete))
	assert.Equal(t, entity.PaymentSessionExpired, mapProviderStatus(payment.StatusExpired))
	assert.Equal(t, entity.PaymentSessionFailed, mapProviderStatus("canceled"))
}
