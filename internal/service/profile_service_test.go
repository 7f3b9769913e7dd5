package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamtale/dreamtale-api/internal/domain"
	"github.com/dreamtale/dreamtale-api/internal/platform/memstore"
	"github.com/dreamtale/dreamtale-api/internal/store"
)

func newProfileService(t *testing.T) (*ProfileService, *memstore.ProfileStore) {
	t.Helper()

	profiles := memstore.NewProfileStore()
	svc, err := NewProfileService(testLogger(), profiles)
	require.NoError(t, err)
	return svc, profiles
}

func profileInsert(name string) domain.InsertProfile {
	return domain.InsertProfile{
		Name:      name,
		Gender:    "Girl",
		Age:       7,
		HairColor: "Black",
		HairType:  "Wavy",
		SkinTone:  "Tan",
	}
}

func TestProfileCreateAndGet(t *testing.T) {
	svc, _ := newProfileService(t)

	created, err := svc.Create(context.Background(), profileInsert("Zeynep"))
	require.NoError(t, err)
	assert.Equal(t, "Zeynep", created.Name)
	assert.False(t, created.CreationDate.IsZero())

	fetched, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestProfileCreateEnforcesLimit(t *testing.T) {
	svc, _ := newProfileService(t)

	for i := 0; i < MaxProfiles; i++ {
		_, err := svc.Create(context.Background(), profileInsert(fmt.Sprintf("Child %d", i+1)))
		require.NoError(t, err, "profile %d within the limit", i+1)
	}

	_, err := svc.Create(context.Background(), profileInsert("One Too Many"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileLimitReached)

	profiles, listErr := svc.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, profiles, MaxProfiles)
}

func TestProfileDeleteFreesLimitSlot(t *testing.T) {
	svc, _ := newProfileService(t)

	var lastID int
	for i := 0; i < MaxProfiles; i++ {
		profile, err := svc.Create(context.Background(), profileInsert(fmt.Sprintf("Child %d", i+1)))
		require.NoError(t, err)
		lastID = profile.ID
	}

	require.NoError(t, svc.Delete(context.Background(), lastID))

	_, err := svc.Create(context.Background(), profileInsert("Replacement"))
	assert.NoError(t, err)
}

func TestProfileGetNotFound(t *testing.T) {
	svc, _ := newProfileService(t)

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	err = svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileCreateValidationErrorPropagates(t *testing.T) {
	svc, _ := newProfileService(t)

	insert := profileInsert("Too Young")
	insert.Age = 2

	_, err := svc.Create(context.Background(), insert)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}
