// Package bookings records confirmed trips and resolves them by reference.
package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/berryair/concierge/pkg/domain"
	"github.com/berryair/concierge/pkg/ports"
)

const (
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 6
)

// Service is an in-memory booking ledger.
type Service struct {
	mu     sync.RWMutex
	byRef  map[string]domain.BookingRecord
	nextID int
	now    func() time.Time
	newRef func() (string, error)
}

var _ ports.Booker = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the booking timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an empty booking ledger.
func NewService(opts ...Option) *Service {
	s := &Service{
		byRef:  make(map[string]domain.BookingRecord),
		nextID: 1,
		now:    time.Now,
		newRef: newReference,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create records a booking for the trip and returns it with a unique
// reference. The total is priced from the trip's base fares.
func (s *Service) Create(ctx context.Context, trip domain.Trip, userID int, class domain.TravelClass) (domain.BookingRecord, error) {
	if _, err := domain.ParseTravelClass(string(class)); err != nil {
		return domain.BookingRecord{}, err
	}
	total := trip.PriceFor(class)

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.uniqueReference()
	if err != nil {
		return domain.BookingRecord{}, err
	}

	record := domain.BookingRecord{
		ID:             s.nextID,
		Reference:      ref,
		TripType:       trip.Type,
		OutboundFlight: trip.Outbound.ID,
		TravelClass:    class,
		CreatedAt:      s.now().UTC(),
		UserID:         userID,
		TotalAmount:    total,
	}
	if trip.Return != nil {
		returnID := trip.Return.ID
		record.ReturnFlight = &returnID
	}
	s.nextID++
	s.byRef[ref] = record
	return record, nil
}

// ByReference looks up a booking by its reference code.
func (s *Service) ByReference(ctx context.Context, reference string) (domain.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byRef[reference]
	if !ok {
		return domain.BookingRecord{}, domain.ErrBookingNotFound
	}
	return record, nil
}

// ForUser lists a user's bookings, newest first.
func (s *Service) ForUser(userID int) []domain.BookingRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []domain.BookingRecord
	for _, record := range s.byRef {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	return records
}

// Delete removes a booking. Only the owning user may delete it; a booking
// held by another user is indistinguishable from a missing one.
func (s *Service) Delete(userID int, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byRef[reference]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if record.UserID != userID {
		return domain.ErrBookingNotFound
	}
	delete(s.byRef, reference)
	return nil
}

// uniqueReference draws references until one is unused. Callers hold the
// write lock.
func (s *Service) uniqueReference() (string, error) {
	for {
		ref, err := s.newRef()
		if err != nil {
			return "", err
		}
		if _, taken := s.byRef[ref]; !taken {
			return ref, nil
		}
	}
}

func newReference() (string, error) {
	buf := make([]byte, referenceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generating booking reference: %w", err)
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
