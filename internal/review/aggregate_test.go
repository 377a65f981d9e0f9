package review

import (
	"context"
	"testing"

	"local_services/internal/db/dbtest"
	"local_services/internal/domain"
	"local_services/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	agg       *Aggregate
	store     *store.Store
	provider  *domain.User
	reviewers []*domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := store.New(dbtest.Open(t))
	provider := &domain.User{Name: "Meena", Email: "meena@example.com", Password: "x", Role: domain.RoleProvider, Status: domain.StatusActive}
	require.NoError(t, s.Users.Create(ctx, provider))
	var reviewers []*domain.User
	for _, name := range []string{"Anil", "Bina", "Chetan"} {
		u := &domain.User{Name: name, Email: name + "@example.com", Password: "x", Role: domain.RoleCustomer, Status: domain.StatusActive}
		require.NoError(t, s.Users.Create(ctx, u))
		reviewers = append(reviewers, u)
	}
	return &fixture{agg: NewAggregate(s.Reviews, s.Users, nil), store: s, provider: provider, reviewers: reviewers}
}

func (f *fixture) add(t *testing.T, reviewer *domain.User, rating int, comment string) (uint, error) {
	t.Helper()
	return f.agg.Add(context.Background(), AddInput{
		ProviderID: f.provider.ID,
		ReviewerID: &reviewer.ID,
		Rating:     &rating,
		Comment:    comment,
	})
}

func TestRatingWithoutReviews(t *testing.T) {
	f := newFixture(t)
	got, err := f.agg.Rating(context.Background(), f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, Rating{Average: 0, Count: 0}, got)
}

func TestAddClampsAndAverages(t *testing.T) {
	f := newFixture(t)
	_, err := f.add(t, f.reviewers[0], 9, "great")
	require.NoError(t, err)
	_, err = f.add(t, f.reviewers[1], -3, "late")
	require.NoError(t, err)
	_, err = f.add(t, f.reviewers[2], 4, "ok")
	require.NoError(t, err)

	got, err := f.agg.Rating(context.Background(), f.provider.ID)
	require.NoError(t, err)
	// (5 + 1 + 4) / 3 = 3.333...
	assert.Equal(t, Rating{Average: 3.3, Count: 3}, got)

	views, err := f.agg.List(context.Background(), f.provider.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	ratings := map[string]int{}
	for _, v := range views {
		ratings[v.User.Name] = v.Rating
	}
	assert.Equal(t, map[string]int{"Anil": 5, "Bina": 1, "Chetan": 4}, ratings)
}

func TestListNewestFirst(t *testing.T) {
	f := newFixture(t)
	first, err := f.add(t, f.reviewers[0], 3, "first")
	require.NoError(t, err)
	second, err := f.add(t, f.reviewers[1], 4, "second")
	require.NoError(t, err)

	views, err := f.agg.List(context.Background(), f.provider.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second, views[0].ID)
	assert.Equal(t, first, views[1].ID)
	assert.Equal(t, "Bina", views[0].User.Name)
}

func TestDuplicateReviewIsConflict(t *testing.T) {
	f := newFixture(t)
	id, err := f.add(t, f.reviewers[0], 2, "meh")
	require.NoError(t, err)

	_, err = f.add(t, f.reviewers[0], 5, "changed my mind")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	views, err := f.agg.List(context.Background(), f.provider.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, id, views[0].ID)
	assert.Equal(t, 2, views[0].Rating)
	assert.Equal(t, "meh", views[0].Comment)
}

func TestAddValidatesParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rating := 4
	ghost := uint(999)

	_, err := f.agg.Add(ctx, AddInput{ProviderID: f.provider.ID, Rating: &rating})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.agg.Add(ctx, AddInput{ProviderID: f.provider.ID, ReviewerID: &f.reviewers[0].ID})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.agg.Add(ctx, AddInput{ProviderID: ghost, ReviewerID: &f.reviewers[0].ID, Rating: &rating})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "Provider not found", domain.MessageOf(err))

	// A customer cannot be reviewed as a provider
	_, err = f.agg.Add(ctx, AddInput{ProviderID: f.reviewers[1].ID, ReviewerID: &f.reviewers[0].ID, Rating: &rating})
	assert.Equal(t, "Provider not found", domain.MessageOf(err))

	_, err = f.agg.Add(ctx, AddInput{ProviderID: f.provider.ID, ReviewerID: &ghost, Rating: &rating})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Equal(t, "User not found", domain.MessageOf(err))
}
