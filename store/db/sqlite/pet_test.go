package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patitas/patitas/internal/profile"
	"github.com/patitas/patitas/store"
)

func newTestDB(t *testing.T) store.Driver {
	t.Helper()
	driver, err := NewDB(&profile.Profile{
		DSN: filepath.Join(t.TempDir(), "patitas_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = driver.Close() })
	require.NoError(t, driver.Migrate(context.Background()))
	return driver
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vec := []float32{0.5, -1.25, 0, 3.75e-3, 42}

	got, err := blobToVector(vectorToBlob(vec))
	require.NoError(t, err)
	require.Equal(t, vec, got)
}

func TestBlobToVectorInvalidLength(t *testing.T) {
	_, err := blobToVector([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCreateAndListPets(t *testing.T) {
	ctx := context.Background()
	driver := newTestDB(t)

	created, err := driver.CreatePet(ctx, &store.Pet{
		Name:      "Rocky",
		District:  "Miraflores",
		Reference: "Parque Kennedy",
		Lat:       -12.1211,
		Lon:       -77.0297,
		GeoCell:   "89e2f6056b3ffff",
		Embedding: []float32{0.1, 0.2, 0.3},
		ImagePath: "/data/images/rocky.jpg",
		CreatedTs: 1700000000,
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)

	pets, err := driver.ListPets(ctx, &store.FindPet{})
	require.NoError(t, err)
	require.Len(t, pets, 1)

	pet := pets[0]
	require.Equal(t, created.ID, pet.ID)
	require.Equal(t, "Rocky", pet.Name)
	require.Equal(t, "Miraflores", pet.District)
	require.Equal(t, "Parque Kennedy", pet.Reference)
	require.Equal(t, "89e2f6056b3ffff", pet.GeoCell)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, pet.Embedding)
	require.Equal(t, int64(1700000000), pet.CreatedTs)
}

func TestListPetsByIDs(t *testing.T) {
	ctx := context.Background()
	driver := newTestDB(t)

	var ids []int64
	for _, name := range []string{"Rocky", "Luna", "Max"} {
		pet, err := driver.CreatePet(ctx, &store.Pet{
			Name:      name,
			Lat:       -12.0464,
			Lon:       -77.0428,
			Embedding: []float32{1},
			CreatedTs: 1700000000,
		})
		require.NoError(t, err)
		ids = append(ids, pet.ID)
	}

	pets, err := driver.ListPets(ctx, &store.FindPet{IDs: []int64{ids[0], ids[2]}})
	require.NoError(t, err)
	require.Len(t, pets, 2)
	require.Equal(t, "Rocky", pets[0].Name)
	require.Equal(t, "Max", pets[1].Name)

	// Unknown IDs are silently absent.
	pets, err = driver.ListPets(ctx, &store.FindPet{IDs: []int64{ids[1], 9999}})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.Equal(t, "Luna", pets[0].Name)
}

func TestListPetsByID(t *testing.T) {
	ctx := context.Background()
	driver := newTestDB(t)

	created, err := driver.CreatePet(ctx, &store.Pet{
		Name:      "Rocky",
		Lat:       -12.0464,
		Lon:       -77.0428,
		Embedding: []float32{1},
		CreatedTs: 1700000000,
	})
	require.NoError(t, err)

	pets, err := driver.ListPets(ctx, &store.FindPet{ID: &created.ID})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.Equal(t, created.ID, pets[0].ID)
}
