package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"campusevents/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, every method returns this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, from time.Time) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]*domain.Event, 0)
	for _, e := range f.byID {
		if !e.Date.Before(from) {
			cp := *e
			events = append(events, &cp)
		}
	}
	return events, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, fields domain.EventUpdate) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if fields.MaxRegistrations != nil {
		if e.CurrentRegistrations > *fields.MaxRegistrations {
			return nil, fmt.Errorf("%w: max_registrations below current registration count", domain.ErrValidation)
		}
		e.MaxRegistrations = *fields.MaxRegistrations
	}
	if fields.Title != nil {
		e.Title = *fields.Title
	}
	if fields.Date != nil {
		e.Date = *fields.Date
	}
	if fields.RegistrationDeadline != nil {
		e.RegistrationDeadline = *fields.RegistrationDeadline
	}
	if fields.PosterURL != nil {
		e.PosterURL = fields.PosterURL
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRegistrationRepo mirrors the database admit transaction in memory:
// the mutex stands in for the row lock, so capacity and duplicate rules
// hold under concurrent Admit calls.
type fakeRegistrationRepo struct {
	mu      sync.Mutex
	events  *fakeEventRepo
	byEvent map[string][]*domain.Registration
	nextID  int
	err     error
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		events:  events,
		byEvent: make(map[string][]*domain.Registration),
		nextID:  1,
	}
}

func (f *fakeRegistrationRepo) Admit(ctx context.Context, reg *domain.Registration) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events.mu.Lock()
	defer f.events.mu.Unlock()

	event, ok := f.events.byID[reg.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	if event.CurrentRegistrations >= event.MaxRegistrations {
		return domain.ErrEventFull
	}
	for _, existing := range f.byEvent[reg.EventID] {
		if existing.Email == reg.Email {
			return domain.ErrDuplicateRegistration
		}
	}
	event.CurrentRegistrations++
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	f.byEvent[reg.EventID] = append(f.byEvent[reg.EventID], reg)
	return nil
}

func (f *fakeRegistrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Registration(nil), f.byEvent[eventID]...), nil
}

func (f *fakeRegistrationRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEvent[eventID]), nil
}

// fakeMailer records sent mail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakePosterStore records uploads and returns a deterministic URL.
type fakePosterStore struct {
	keys []string
	err  error
}

func (f *fakePosterStore) Put(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, filename)
	return "https://cdn.test/" + filename, nil
}

// fakeAdminRepo is an in-memory AdminUserRepository.
type fakeAdminRepo struct {
	byEmail map[string]*domain.AdminUser
	err     error
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.AdminUser, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeHasher compares plaintext; Hash prefixes so tests can tell it ran.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return "hashed:" + salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != "hashed:"+salt+":"+password {
		return fmt.Errorf("hash mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f *fakeIssuer) Issue(adminID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-" + adminID, nil
}
