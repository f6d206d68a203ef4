package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/pkg/payment"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ==================== MockUserRepository ====================

type MockUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User

	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*entity.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uuid.UUID]*entity.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id], nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[userID]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return fmt.Errorf("user %s not found", userID.String())
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.IsActive = false
		return nil
	}
	return fmt.Errorf("user %s not found", id.String())
}

// ==================== MockSessionRepository ====================

type MockSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*entity.Session)}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.Token.String()] = session
	return nil
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil || s.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return s, nil
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok || s.RevokedAt != nil {
		return fmt.Errorf("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, s := range m.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) error {
	return nil
}

// ==================== MockPasswordResetRepository ====================

type MockPasswordResetRepository struct {
	mu     sync.RWMutex
	resets map[string]*entity.PasswordReset
}

func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{resets: make(map[string]*entity.PasswordReset)}
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[reset.Token] = reset
	return nil
}

func (m *MockPasswordResetRepository) FindValidToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resets[token]
	if !ok || r.IsUsed || r.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return r, nil
}

func (m *MockPasswordResetRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resets {
		if r.ID == id {
			r.IsUsed = true
			return nil
		}
	}
	return fmt.Errorf("reset token %s not found", id.String())
}

// ==================== MockTourRepository ====================

type MockTourRepository struct {
	mu    sync.RWMutex
	tours map[uuid.UUID]*entity.Tour

	FindByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
}

func NewMockTourRepository() *MockTourRepository {
	return &MockTourRepository{tours: make(map[uuid.UUID]*entity.Tour)}
}

func (m *MockTourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tours[tour.ID] = tour
	return nil
}

func (m *MockTourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tours[id], nil
}

func (m *MockTourRepository) FindBySlug(ctx context.Context, slug string) (*entity.Tour, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tours {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTourRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tours []*entity.Tour
	for _, t := range m.tours {
		tours = append(tours, t)
	}
	if offset >= len(tours) {
		return nil, nil
	}
	end := offset + limit
	if end > len(tours) {
		end = len(tours)
	}
	return tours[offset:end], nil
}

func (m *MockTourRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.tours)), nil
}

func (m *MockTourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tours[tour.ID]; !ok {
		return fmt.Errorf("tour %s not found", tour.ID.String())
	}
	m.tours[tour.ID] = tour
	return nil
}

func (m *MockTourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tours[id]; !ok {
		return fmt.Errorf("tour %s not found", id.String())
	}
	delete(m.tours, id)
	return nil
}

func (m *MockTourRepository) UpdateRatings(ctx context.Context, tourID uuid.UUID, average float64, quantity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tours[tourID]
	if !ok {
		return fmt.Errorf("tour %s not found", tourID.String())
	}
	t.RatingsAverage = average
	t.RatingsQuantity = quantity
	return nil
}

// ==================== MockReviewRepository ====================

type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[uuid.UUID]*entity.Review
}

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reviews[id], nil
}

func (m *MockReviewRepository) FindByTourID(ctx context.Context, tourID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var reviews []*entity.Review
	for _, r := range m.reviews {
		if r.TourID == tourID {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (m *MockReviewRepository) CountByTourID(ctx context.Context, tourID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, r := range m.reviews {
		if r.TourID == tourID {
			count++
		}
	}
	return count, nil
}

func (m *MockReviewRepository) FindByUserAndTour(ctx context.Context, userID, tourID uuid.UUID) (*entity.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.reviews {
		if r.UserID == userID && r.TourID == tourID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return fmt.Errorf("review %s not found", id.String())
	}
	delete(m.reviews, id)
	return nil
}

func (m *MockReviewRepository) AverageRatingByTourID(ctx context.Context, tourID uuid.UUID) (float64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum, count int64
	for _, r := range m.reviews {
		if r.TourID == tourID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// ==================== MockPaymentSessionRepository ====================

type MockPaymentSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.PaymentSession
}

func NewMockPaymentSessionRepository() *MockPaymentSessionRepository {
	return &MockPaymentSessionRepository{sessions: make(map[string]*entity.PaymentSession)}
}

func (m *MockPaymentSessionRepository) Create(ctx context.Context, session *entity.PaymentSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.SessionID] = session
	return nil
}

func (m *MockPaymentSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.PaymentSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID], nil
}

func (m *MockPaymentSessionRepository) UpdateStatus(ctx context.Context, sessionID string, status entity.PaymentSessionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("payment session %s not found", sessionID)
	}
	s.Status = status
	return nil
}

// ==================== MockBookingRepository ====================

// MockBookingRepository enforces session_id uniqueness under a mutex the
// way the bookings table's UNIQUE constraint does, so concurrent
// reconciliation tests exercise the same winner/loser paths.
type MockBookingRepository struct {
	mu        sync.RWMutex
	bookings  map[uuid.UUID]*entity.Booking
	bySession map[string]*entity.Booking

	// TourNames feeds the joined tour_name column that list reads return.
	TourNames map[uuid.UUID]string

	CreateFn func(ctx context.Context, booking *entity.Booking) error
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings:  make(map[uuid.UUID]*entity.Booking),
		bySession: make(map[string]*entity.Booking),
		TourNames: make(map[uuid.UUID]string),
	}
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, booking)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySession[booking.SessionID]; ok {
		return fmt.Errorf("create booking for session %s: %w", booking.SessionID, repository.ErrDuplicateSession)
	}
	m.bookings[booking.ID] = booking
	m.bySession[booking.SessionID] = booking
	return nil
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id], nil
}

func (m *MockBookingRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bySession[sessionID], nil
}

func (m *MockBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingWithTour, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bookings []*entity.BookingWithTour
	for _, b := range m.bookings {
		if b.UserID == userID {
			bookings = append(bookings, &entity.BookingWithTour{Booking: *b, TourName: m.TourNames[b.TourID]})
		}
	}
	return bookings, nil
}

func (m *MockBookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, b := range m.bookings {
		if b.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *MockBookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.BookingWithTour, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bookings []*entity.BookingWithTour
	for _, b := range m.bookings {
		bookings = append(bookings, &entity.BookingWithTour{Booking: *b, TourName: m.TourNames[b.TourID]})
	}
	return bookings, nil
}

func (m *MockBookingRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.bookings)), nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(m.bySession, b.SessionID)
	delete(m.bookings, id)
	return nil
}

// ==================== MockPaymentProvider ====================

type MockPaymentProvider struct {
	mu       sync.Mutex
	calls    map[string]int
	sessions map[string]*payment.Session

	CreateSessionFn func(ctx context.Context, req *payment.CreateSessionRequest) (*payment.Session, error)
	GetSessionFn    func(ctx context.Context, sessionID string) (*payment.Session, error)
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{
		calls:    make(map[string]int),
		sessions: make(map[string]*payment.Session),
	}
}

func (m *MockPaymentProvider) CreateSession(ctx context.Context, req *payment.CreateSessionRequest) (*payment.Session, error) {
	m.mu.Lock()
	m.calls["CreateSession"]++
	m.mu.Unlock()
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx, req)
	}
	session := &payment.Session{
		ID:          "cs_" + uuid.NewString(),
		URL:         "https://checkout.example.com/pay",
		Status:      payment.StatusOpen,
		AmountTotal: req.LineItems[0].Amount,
	}
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()
	return session, nil
}

func (m *MockPaymentProvider) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	m.mu.Lock()
	m.calls["GetSession"]++
	m.mu.Unlock()
	if m.GetSessionFn != nil {
		return m.GetSessionFn(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("provider error resource_missing: no such session")
}

func (m *MockPaymentProvider) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// ==================== MockMailer ====================

type MockMailer struct {
	mu   sync.Mutex
	Sent []string
}

func (m *MockMailer) SendWelcome(name, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, "welcome:"+email)
}

func (m *MockMailer) SendPasswordReset(name, email, resetURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, "reset:"+email)
}

func (m *MockMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// ==================== Test fixtures ====================

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:           NewMockUserRepository(),
		Session:        NewMockSessionRepository(),
		PasswordReset:  NewMockPasswordResetRepository(),
		Tour:           NewMockTourRepository(),
		Review:         NewMockReviewRepository(),
		PaymentSession: NewMockPaymentSessionRepository(),
		Booking:        NewMockBookingRepository(),
	}
}

func newTestConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:     "tour-booking-test",
			FrontURL: "http://localhost:3000",
		},
		Auth: utils.AuthConfig{
			SessionExpiryHours: 24,
			ResetExpiryMinutes: 10,
		},
		Payment: utils.PaymentConfig{
			Currency: "usd",
		},
	}
}

func newTestTour(price int64) *entity.Tour {
	now := time.Now()
	return &entity.Tour{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         "The Forest Hiker",
		Slug:         "the-forest-hiker",
		Summary:      "Breathtaking hike through the Canadian Banff National Park",
		ImageCover:   "tour-1-cover.jpg",
		Price:        price,
		DurationDays: 5,
		MaxGroupSize: 25,
		Difficulty:   entity.DifficultyEasy,
	}
}

func newTestUser() *entity.User {
	now := time.Now()
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         "Laura Gravel",
		Email:        "laura@example.com",
		PasswordHash: "$2a$10$placeholderhashplaceholderhash",
		Role:         entity.RoleUser,
		IsActive:     true,
	}
}

var testLogger = zap.NewNop()
