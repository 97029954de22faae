package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashspot/backend/internal/listing/domain"
	"github.com/stashspot/backend/internal/platform/logger"
	userdomain "github.com/stashspot/backend/internal/user/domain"
)

type fakeListingRepo struct {
	listings  map[string]*domain.Listing
	deleteErr error
	updateErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*domain.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, l *domain.Listing) error {
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Update(_ context.Context, l *domain.Listing) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.listings[l.ID]; !ok {
		return domain.ErrListingNotFound
	}
	cp := *l
	r.listings[l.ID] = &cp
	return nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeListingRepo) FindByHost(_ context.Context, hostID string) ([]*domain.Listing, error) {
	var out []*domain.Listing
	for _, l := range r.listings {
		if l.HostID == hostID && l.IsActive {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) FindByFilter(_ context.Context, _ domain.Filter, _ domain.Page) ([]*domain.Listing, error) {
	var out []*domain.Listing
	for _, l := range r.listings {
		if l.IsActive {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*userdomain.User
}

func newFakeUserRepo(users ...*userdomain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*userdomain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *userdomain.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userdomain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return userdomain.ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*userdomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

type recordingMailer struct {
	sentTo []string
}

func (m *recordingMailer) SendListingCreatedEmail(toEmail, _ string) error {
	m.sentTo = append(m.sentTo, toEmail)
	return nil
}

var (
	hostUser  = &userdomain.User{ID: "host-1", Username: "host", Email: "host@example.com", IsHost: true}
	guestUser = &userdomain.User{ID: "guest-1", Username: "guest", Email: "guest@example.com"}
	adminUser = &userdomain.User{ID: "admin-1", Username: "admin", IsHost: true, IsAdmin: true}
)

func newTestUsecase(t *testing.T) (*ListingUsecase, *fakeListingRepo, *recordingPublisher, *recordingMailer) {
	t.Helper()
	repo := newFakeListingRepo()
	users := newFakeUserRepo(hostUser, guestUser, adminUser)
	events := &recordingPublisher{}
	mail := &recordingMailer{}
	uc := NewListingUsecase(repo, users, nil, events, mail, logger.NewLogger())
	return uc, repo, events, mail
}

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:         "Dry garage near downtown",
		SpaceType:     domain.SpaceGarage,
		Size:          200,
		PricePerMonth: 15000,
		Address:       "123 Main St",
		City:          "Austin",
		State:         "TX",
		ZipCode:       "78701",
		Country:       "United States",
		IsActive:      true,
	}
}

func TestCreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("host creates a listing", func(t *testing.T) {
		uc, repo, events, mail := newTestUsecase(t)

		listing, err := uc.CreateListing(ctx, validCreateInput(), hostUser.Principal())
		require.NoError(t, err)
		assert.NotEmpty(t, listing.ID)
		assert.Equal(t, hostUser.ID, listing.HostID)
		assert.Contains(t, repo.listings, listing.ID)
		assert.Equal(t, []string{"listing.created"}, events.subjects)
		assert.Equal(t, []string{hostUser.Email}, mail.sentTo)
	})

	t.Run("non-host is forbidden", func(t *testing.T) {
		uc, repo, _, _ := newTestUsecase(t)

		_, err := uc.CreateListing(ctx, validCreateInput(), guestUser.Principal())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, repo.listings)
	})

	t.Run("unknown actor maps to host not found", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(t)

		_, err := uc.CreateListing(ctx, validCreateInput(), userdomain.Principal{ID: "ghost"})
		assert.ErrorIs(t, err, domain.ErrHostNotFound)
	})

	t.Run("invalid input is rejected before persistence", func(t *testing.T) {
		uc, repo, events, _ := newTestUsecase(t)

		input := validCreateInput()
		input.Size = 0
		_, err := uc.CreateListing(ctx, input, hostUser.Principal())
		assert.ErrorIs(t, err, domain.ErrInvalidListingData)
		assert.Empty(t, repo.listings)
		assert.Empty(t, events.subjects)
	})
}

func TestUpdateListing(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*ListingUsecase, *fakeListingRepo, *recordingPublisher, *domain.Listing) {
		t.Helper()
		uc, repo, events, _ := newTestUsecase(t)
		listing, err := uc.CreateListing(ctx, validCreateInput(), hostUser.Principal())
		require.NoError(t, err)
		events.subjects = nil
		return uc, repo, events, listing
	}

	t.Run("owner applies a sparse patch", func(t *testing.T) {
		uc, repo, events, listing := seed(t)

		newPrice := 17500
		updated, err := uc.UpdateListing(ctx, listing.ID, UpdateListingInput{PricePerMonth: &newPrice}, hostUser.Principal())
		require.NoError(t, err)
		assert.Equal(t, 17500, updated.PricePerMonth)
		assert.Equal(t, listing.Title, updated.Title)
		assert.Equal(t, 17500, repo.listings[listing.ID].PricePerMonth)
		assert.Equal(t, []string{"listing.updated"}, events.subjects)
	})

	t.Run("admin may patch another host's listing", func(t *testing.T) {
		uc, _, _, listing := seed(t)

		title := "Moderated title"
		updated, err := uc.UpdateListing(ctx, listing.ID, UpdateListingInput{Title: &title}, adminUser.Principal())
		require.NoError(t, err)
		assert.Equal(t, "Moderated title", updated.Title)
		assert.Equal(t, hostUser.ID, updated.HostID, "ownership must not change")
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		uc, _, _, listing := seed(t)

		title := "Hijacked"
		_, err := uc.UpdateListing(ctx, listing.ID, UpdateListingInput{Title: &title}, guestUser.Principal())
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("invalid patch leaves the stored listing untouched", func(t *testing.T) {
		uc, repo, events, listing := seed(t)

		badSize := -20
		_, err := uc.UpdateListing(ctx, listing.ID, UpdateListingInput{Size: &badSize}, hostUser.Principal())
		assert.ErrorIs(t, err, domain.ErrInvalidListingData)
		assert.Equal(t, listing.Size, repo.listings[listing.ID].Size)
		assert.Empty(t, events.subjects)
	})

	t.Run("missing listing", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(t)

		title := "anything"
		_, err := uc.UpdateListing(ctx, "nope", UpdateListingInput{Title: &title}, hostUser.Principal())
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}

func TestDeleteListing(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*ListingUsecase, *fakeListingRepo, *recordingPublisher, *domain.Listing) {
		t.Helper()
		uc, repo, events, _ := newTestUsecase(t)
		listing, err := uc.CreateListing(ctx, validCreateInput(), hostUser.Principal())
		require.NoError(t, err)
		events.subjects = nil
		return uc, repo, events, listing
	}

	t.Run("owner deletes", func(t *testing.T) {
		uc, repo, events, listing := seed(t)

		require.NoError(t, uc.DeleteListing(ctx, listing.ID, hostUser.Principal()))
		assert.NotContains(t, repo.listings, listing.ID)
		assert.Equal(t, []string{"listing.deleted"}, events.subjects)
	})

	t.Run("admin deletes another host's listing", func(t *testing.T) {
		uc, repo, _, listing := seed(t)

		require.NoError(t, uc.DeleteListing(ctx, listing.ID, adminUser.Principal()))
		assert.NotContains(t, repo.listings, listing.ID)
	})

	t.Run("stranger is forbidden and nothing is removed", func(t *testing.T) {
		uc, repo, _, listing := seed(t)

		err := uc.DeleteListing(ctx, listing.ID, guestUser.Principal())
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Contains(t, repo.listings, listing.ID)
	})

	t.Run("cascade failure surfaces as a repository error", func(t *testing.T) {
		uc, repo, _, listing := seed(t)
		repo.deleteErr = errors.New("fk violation")

		err := uc.DeleteListing(ctx, listing.ID, hostUser.Principal())
		assert.ErrorIs(t, err, domain.ErrRepository)
	})

	t.Run("missing listing", func(t *testing.T) {
		uc, _, _, _ := newTestUsecase(t)

		err := uc.DeleteListing(ctx, "nope", hostUser.Principal())
		assert.ErrorIs(t, err, domain.ErrListingNotFound)
	})
}

func TestGetListingByID(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _ := newTestUsecase(t)

	created, err := uc.CreateListing(ctx, validCreateInput(), hostUser.Principal())
	require.NoError(t, err)

	got, err := uc.GetListingByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.GetListingByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}
