package engine

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/speaker-engagement/internal/model"
)

// memStores is an in-memory implementation of every store interface,
// shared by the engine tests.  It mirrors the contract of the MySQL
// repositories: NotFound-kinded errors for missing rows, a duplicate
// error for a second live (speaker, event) booking, and CAS semantics
// on the status updates.  A single mutex keeps it safe for the
// concurrent booking test.
type memStores struct {
	mu        sync.Mutex
	nextID    uint64
	speakers  map[uint64]model.Speaker
	blocks    map[uint64]model.AvailabilityBlock
	bookings  map[uint64]model.Booking
	contracts map[uint64]model.Contract
	payments  map[uint64]model.Payment
	tiers     map[uint64][]model.DiscountTier
	seqs      map[string]int64
}

func newMemStores() *memStores {
	return &memStores{
		speakers:  make(map[uint64]model.Speaker),
		blocks:    make(map[uint64]model.AvailabilityBlock),
		bookings:  make(map[uint64]model.Booking),
		contracts: make(map[uint64]model.Contract),
		payments:  make(map[uint64]model.Payment),
		tiers:     make(map[uint64][]model.DiscountTier),
		seqs:      make(map[string]int64),
	}
}

func (m *memStores) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memStores) addSpeaker(name string, cat model.SpeakerCategory) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.id()
	m.speakers[id] = model.Speaker{ID: id, FullName: name, Category: cat}
	return id
}

func (m *memStores) GetSpeaker(_ context.Context, id uint64) (*model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.speakers[id]
	if !ok {
		return nil, NewNotFound("speaker", id)
	}
	return &s, nil
}

func (m *memStores) ListActiveBlocks(_ context.Context, speakerID uint64) ([]model.AvailabilityBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.AvailabilityBlock
	for _, b := range m.blocks {
		if b.SpeakerID == speakerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStores) CreateBlock(_ context.Context, block *model.AvailabilityBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	block.ID = m.id()
	m.blocks[block.ID] = *block
	return nil
}

func (m *memStores) DeleteBlock(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blocks[id]; !ok {
		return NewNotFound("availability_block", id)
	}
	delete(m.blocks, id)
	return nil
}

func (m *memStores) ListActiveBookings(_ context.Context, speakerID, excludeEventID uint64) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.bookings {
		if b.SpeakerID != speakerID || b.DeletedAt != nil {
			continue
		}
		if excludeEventID != 0 && b.EventID == excludeEventID {
			continue
		}
		if b.Status == model.BookingTentative || b.Status == model.BookingConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStores) FindLiveBySpeakerEvent(_ context.Context, speakerID, eventID uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.SpeakerID == speakerID && b.EventID == eventID && b.DeletedAt == nil {
			return &b, nil
		}
	}
	return nil, nil
}

func (m *memStores) CreateBooking(_ context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.bookings {
		if other.SpeakerID == b.SpeakerID && other.EventID == b.EventID && other.DeletedAt == nil {
			return NewDuplicateBooking(b.SpeakerID, b.EventID)
		}
	}
	b.ID = m.id()
	b.CreatedAt = time.Now().UTC()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStores) GetBooking(_ context.Context, id uint64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.DeletedAt != nil {
		return nil, NewNotFound("booking", id)
	}
	return &b, nil
}

func (m *memStores) UpdateBookingStatus(_ context.Context, id uint64, from, to model.BookingStatus, st BookingStamps) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.DeletedAt != nil || b.Status != from {
		return false, nil
	}
	b.Status = to
	if st.ConfirmedAt != nil {
		b.ConfirmedAt = st.ConfirmedAt
	}
	if st.CancelledAt != nil {
		b.CancelledAt = st.CancelledAt
	}
	if st.CancelReason != nil {
		b.CancelReason = st.CancelReason
	}
	m.bookings[id] = b
	return true, nil
}

func (m *memStores) SoftDeleteBooking(_ context.Context, id uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.DeletedAt != nil {
		return false, nil
	}
	now := time.Now().UTC()
	b.DeletedAt = &now
	m.bookings[id] = b
	return true, nil
}

func (m *memStores) CreateContract(_ context.Context, c *model.Contract) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	c.CreatedAt = time.Now().UTC()
	m.contracts[c.ID] = *c
	return nil
}

func (m *memStores) GetContract(_ context.Context, id uint64) (*model.Contract, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok {
		return nil, NewNotFound("contract", id)
	}
	return &c, nil
}

func (m *memStores) UpdateContractStatus(_ context.Context, id uint64, from, to model.ContractStatus, st ContractStamps) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.Status = to
	if st.SignedAt != nil {
		c.SignedAt = st.SignedAt
	}
	if st.ApprovedBy != nil {
		c.ApprovedBy = st.ApprovedBy
	}
	if st.ApprovedAt != nil {
		c.ApprovedAt = st.ApprovedAt
	}
	if st.RejectReason != nil {
		c.RejectReason = st.RejectReason
	}
	if st.CancelReason != nil {
		c.CancelReason = st.CancelReason
	}
	m.contracts[id] = c
	return true, nil
}

func (m *memStores) UpdateContractTerms(_ context.Context, id uint64, from model.ContractStatus, agreedCents int64, terms model.PaymentTerms, advancePct *uint8, advanceCents *int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contracts[id]
	if !ok || c.Status != from {
		return false, nil
	}
	c.AgreedAmountCents = agreedCents
	c.Terms = terms
	c.AdvancePercentage = advancePct
	c.AdvanceAmountCents = advanceCents
	m.contracts[id] = c
	return true, nil
}

func (m *memStores) CreatePayment(_ context.Context, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	p.CreatedAt = time.Now().UTC()
	m.payments[p.ID] = *p
	return nil
}

func (m *memStores) GetPayment(_ context.Context, id uint64) (*model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, NewNotFound("payment", id)
	}
	return &p, nil
}

func (m *memStores) ListPaymentsByContract(_ context.Context, contractID uint64) ([]model.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Payment
	for _, p := range m.payments {
		if p.ContractID == contractID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStores) UpdatePaymentStatus(_ context.Context, id uint64, from, to model.PaymentStatus, st PaymentStamps) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	if st.ActualDate != nil {
		p.ActualDate = st.ActualDate
	}
	if st.ISRPercentage != nil {
		p.ISRPercentage = st.ISRPercentage
	}
	if st.ISRWithheldCents != nil {
		p.ISRWithheldCents = st.ISRWithheldCents
	}
	if st.NetAmountCents != nil {
		p.NetAmountCents = st.NetAmountCents
	}
	if st.ProcessedBy != nil {
		p.ProcessedBy = st.ProcessedBy
	}
	if st.ProcessedAt != nil {
		p.ProcessedAt = st.ProcessedAt
	}
	if st.RejectReason != nil {
		p.RejectReason = st.RejectReason
	}
	if st.CancelReason != nil {
		p.CancelReason = st.CancelReason
	}
	m.payments[id] = p
	return true, nil
}

func (m *memStores) ListActiveTiers(_ context.Context, eventID uint64) ([]model.DiscountTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.DiscountTier(nil), m.tiers[eventID]...), nil
}

func (m *memStores) Next(_ context.Context, scope string, year int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scope + "/" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
	m.seqs[key]++
	return m.seqs[key], nil
}
