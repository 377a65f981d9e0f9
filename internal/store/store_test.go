package store

import (
	"context"
	"testing"

	"local_services/internal/db/dbtest"
	"local_services/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, s *Store, name, email, role, status, pincode string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email, Password: "x", Role: role, Status: status, Pincode: pincode}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func TestUsersEmailIsNormalizedAndUnique(t *testing.T) {
	s := New(dbtest.Open(t))
	ctx := context.Background()
	u := newUser(t, s, "Asha", "  Asha@Example.com ", domain.RoleCustomer, domain.StatusActive, "")
	assert.Equal(t, "asha@example.com", u.Email)

	found, err := s.Users.FindByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	dup := &domain.User{Name: "Other", Email: "asha@example.com", Password: "x"}
	err = s.Users.Create(ctx, dup)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestFindUnknownIDsAreNotFound(t *testing.T) {
	s := New(dbtest.Open(t))
	ctx := context.Background()

	_, err := s.Users.FindByID(ctx, 42)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "user not found", domain.MessageOf(err))

	_, err = s.Services.FindByID(ctx, 42)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = s.Bookings.FindByID(ctx, 42)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestUsersListPaginates(t *testing.T) {
	s := New(dbtest.Open(t))
	for _, name := range []string{"a", "b", "c"} {
		newUser(t, s, name, name+"@example.com", domain.RoleCustomer, domain.StatusActive, "")
	}
	page, total, err := s.Users.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "c@example.com", page[0].Email)

	pending, err := s.Users.ListByRoleAndStatus(context.Background(), domain.RoleProvider, domain.StatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestServiceSearchOnlyActiveProviders(t *testing.T) {
	s := New(dbtest.Open(t))
	ctx := context.Background()
	active := newUser(t, s, "Ravi", "ravi@example.com", domain.RoleProvider, domain.StatusActive, "560001")
	other := newUser(t, s, "Kiran", "kiran@example.com", domain.RoleProvider, domain.StatusActive, "110001")
	pending := newUser(t, s, "Mohan", "mohan@example.com", domain.RoleProvider, domain.StatusPending, "560001")
	for _, svc := range []*domain.Service{
		{ProviderID: active.ID, Name: "Plumber", PricingPerHour: 350},
		{ProviderID: other.ID, Name: "Plumbing repair", PricingPerHour: 300},
		{ProviderID: pending.ID, Name: "Plumber", PricingPerHour: 250},
		{ProviderID: active.ID, Name: "Electrician", PricingPerHour: 400},
	} {
		require.NoError(t, s.Services.Create(ctx, svc))
	}

	got, err := s.Services.Search(ctx, "PLUMB", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, svc := range got {
		require.NotNil(t, svc.Provider)
		assert.Equal(t, domain.StatusActive, svc.Provider.Status)
	}

	got, err = s.Services.Search(ctx, "plumb", "560001")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ProviderID)

	got, err = s.Services.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	mine, err := s.Services.ListByProvider(ctx, active.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestReviewStatsAndExists(t *testing.T) {
	s := New(dbtest.Open(t))
	ctx := context.Background()
	provider := newUser(t, s, "Ravi", "ravi@example.com", domain.RoleProvider, domain.StatusActive, "")
	a := newUser(t, s, "A", "a@example.com", domain.RoleCustomer, domain.StatusActive, "")
	b := newUser(t, s, "B", "b@example.com", domain.RoleCustomer, domain.StatusActive, "")

	stats, err := s.Reviews.Stats(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, ReviewStats{}, stats)

	require.NoError(t, s.Reviews.Create(ctx, &domain.Review{ProviderID: provider.ID, UserID: a.ID, Rating: 4}))
	require.NoError(t, s.Reviews.Create(ctx, &domain.Review{ProviderID: provider.ID, UserID: b.ID, Rating: 5}))

	stats, err = s.Reviews.Stats(ctx, provider.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, stats.Average, 1e-9)
	assert.Equal(t, int64(2), stats.Count)

	exists, err := s.Reviews.Exists(ctx, provider.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.Reviews.Create(ctx, &domain.Review{ProviderID: provider.ID, UserID: a.ID, Rating: 1})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}
