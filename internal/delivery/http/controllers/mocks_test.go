package controllers

import (
	"context"
	"io"
	"log/slog"

	"campusevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testEventID = "6b1f0c9e-4a2d-4f3a-9c1e-8d2f5a7b3c4d"

// fakeAdmissionService returns canned results.
type fakeAdmissionService struct {
	reg *domain.Registration
	err error
}

func (f *fakeAdmissionService) Register(ctx context.Context, eventID string, input domain.RegistrationInput) (*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reg, nil
}

type fakeRosterService struct {
	regs []*domain.Registration
	csv  []byte
	err  error
}

func (f *fakeRosterService) List(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.regs, nil
}

func (f *fakeRosterService) ExportCSV(ctx context.Context, eventID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.csv, nil
}

type fakeCatalogService struct {
	events []*domain.Event
	event  *domain.Event
	err    error

	gotInput  *domain.EventInput
	gotFields *domain.EventUpdate
	gotPoster *domain.PosterUpload
}

func (f *fakeCatalogService) ListUpcoming(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeCatalogService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeCatalogService) Create(ctx context.Context, input domain.EventInput, poster *domain.PosterUpload) (*domain.Event, error) {
	f.gotInput = &input
	f.gotPoster = poster
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeCatalogService) Update(ctx context.Context, id string, fields domain.EventUpdate, poster *domain.PosterUpload) (*domain.Event, error) {
	f.gotFields = &fields
	f.gotPoster = poster
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeCatalogService) Delete(ctx context.Context, id string) error {
	return f.err
}

type fakeAuthService struct {
	token string
	admin *domain.AdminUser
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.admin, nil
}
