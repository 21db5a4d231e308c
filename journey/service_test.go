package journey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/logger"
	"github.com/aamoria/wellness-api/models"
)

func newTestService(t *testing.T) (*Service, *memDocs, *memMirror) {
	t.Helper()
	docs := newMemDocs()
	mirror := newMemMirror(models.Category{ID: 7, Name: "Jewellery", Slug: "jewellery"})
	svc := NewService(docs, mirror, logger.Nop())
	_, err := svc.CreateJourney(context.Background(), "love", "Love Journey", "")
	require.NoError(t, err)
	return svc, docs, mirror
}

func earrings() models.JourneyProduct {
	return models.JourneyProduct{
		ID:     "aamoria-earrings-sl",
		Name:   "Aamoria Earrings",
		Price:  "₹2,500",
		Images: []string{"/img/earrings.jpg"},
		Step:   1,
	}
}

func TestLoveJourneyLifecycle(t *testing.T) {
	svc, _, mirror := newTestService(t)
	ctx := context.Background()

	j, err := svc.AddProduct(ctx, "love", models.SoulLuxury, earrings())
	require.NoError(t, err)
	require.Len(t, j.Content.Data().SoulLuxury, 1)
	assert.Equal(t, "Aamoria Earrings", j.Content.Data().SoulLuxury[0].Name)
	assert.Empty(t, j.Content.Data().EnergyCurious)
	require.Contains(t, mirror.rows, "aamoria-earrings-sl")
	assert.InDelta(t, 2500, mirror.rows["aamoria-earrings-sl"].Price, 1e-9)
	assert.Equal(t, uint(7), *mirror.rows["aamoria-earrings-sl"].CategoryID)

	_, err = svc.AddProduct(ctx, "love", models.SoulLuxury, earrings())
	assert.True(t, apierr.Is(err, apierr.CodeConflict), "got %v", err)

	updated := earrings()
	updated.Price = "₹3,000"
	j, err = svc.UpdateProduct(ctx, "love", models.SoulLuxury, "aamoria-earrings-sl", updated)
	require.NoError(t, err)
	require.Len(t, j.Content.Data().SoulLuxury, 1)
	assert.Equal(t, "₹3,000", j.Content.Data().SoulLuxury[0].Price)
	assert.InDelta(t, 3000, mirror.rows["aamoria-earrings-sl"].Price, 1e-9)

	j, err = svc.DeleteProduct(ctx, "love", models.SoulLuxury, "aamoria-earrings-sl")
	require.NoError(t, err)
	assert.Empty(t, j.Content.Data().SoulLuxury)
	assert.NotContains(t, mirror.rows, "aamoria-earrings-sl")

	stored, err := svc.GetJourney(ctx, "love")
	require.NoError(t, err)
	assert.Empty(t, stored.Content.Data().SoulLuxury)
	assert.Equal(t, 4, stored.Version)
}

func TestAddProductDuplicateLeavesCatalogUnchanged(t *testing.T) {
	svc, docs, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{ID: "x", Name: "Original"})
	require.NoError(t, err)
	before, _ := svc.GetJourney(ctx, "love")
	savesBefore := docs.saves

	_, err = svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{ID: "x", Name: "Impostor"})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeConflict, apierr.From(err).Code)

	after, _ := svc.GetJourney(ctx, "love")
	assert.Equal(t, before.Content.Data(), after.Content.Data())
	assert.Equal(t, savesBefore, docs.saves)
}

func TestUpdateProductPinsID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{
		ID: "x", Name: "Old", Ethos: "kept?", Features: []string{"a"},
	})
	require.NoError(t, err)

	j, err := svc.UpdateProduct(ctx, "love", models.SoulLuxury, "x", models.JourneyProduct{ID: "y", Name: "New"})
	require.NoError(t, err)

	products := j.Content.Data().SoulLuxury
	require.Len(t, products, 1)
	assert.Equal(t, models.JourneyProduct{ID: "x", Name: "New"}, products[0])
}

func TestUpdateProductMissing(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.UpdateProduct(context.Background(), "love", models.EnergyCurious, "ghost", models.JourneyProduct{Name: "Ghost"})
	assert.True(t, apierr.Is(err, apierr.CodeNotFound), "got %v", err)
}

func TestDeleteProductRemovesExactlyOne(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	for _, p := range []models.JourneyProduct{
		{ID: "1", Name: "A"},
		{ID: "2", Name: "B"},
		{ID: "3", Name: "A"},
	} {
		_, err := svc.AddProduct(ctx, "love", models.EnergyCurious, p)
		require.NoError(t, err)
	}

	j, err := svc.DeleteProduct(ctx, "love", models.EnergyCurious, "2")
	require.NoError(t, err)
	assert.Equal(t, []models.JourneyProduct{{ID: "1", Name: "A"}, {ID: "3", Name: "A"}}, j.Content.Data().EnergyCurious)

	_, err = svc.DeleteProduct(ctx, "love", models.EnergyCurious, "2")
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestDeleteProductSwallowsMirrorErrors(t *testing.T) {
	svc, _, mirror := newTestService(t)
	ctx := context.Background()
	_, err := svc.AddProduct(ctx, "love", models.EnergyCurious, models.JourneyProduct{ID: "p", Name: "P"})
	require.NoError(t, err)

	delete(mirror.rows, "p")
	_, err = svc.DeleteProduct(ctx, "love", models.EnergyCurious, "p")
	assert.NoError(t, err)

	_, err = svc.AddProduct(ctx, "love", models.EnergyCurious, models.JourneyProduct{ID: "q", Name: "Q"})
	require.NoError(t, err)
	mirror.deleteErr = errUnreachable
	_, err = svc.DeleteProduct(ctx, "love", models.EnergyCurious, "q")
	assert.NoError(t, err)
}

func TestMirrorUpsertFailureDoesNotFailAdd(t *testing.T) {
	svc, _, mirror := newTestService(t)
	mirror.upsertErr = errUnreachable

	j, err := svc.AddProduct(context.Background(), "love", models.SoulLuxury, earrings())
	require.NoError(t, err)
	assert.Len(t, j.Content.Data().SoulLuxury, 1)
}

func TestMirrorWithoutCategory(t *testing.T) {
	docs := newMemDocs()
	mirror := newMemMirror()
	svc := NewService(docs, mirror, logger.Nop())
	ctx := context.Background()
	_, err := svc.CreateJourney(ctx, "root", "Root", "")
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, "root", models.SoulLuxury, models.JourneyProduct{ID: "r", Name: "R", Price: "free"})
	require.NoError(t, err)
	assert.Nil(t, mirror.rows["r"].CategoryID)
	assert.Zero(t, mirror.rows["r"].Price)
}

func TestOperationsValidateInput(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string]func() error{
		"missing client type": func() error {
			_, err := svc.AddProduct(ctx, "love", "", earrings())
			return err
		},
		"unknown client type": func() error {
			_, err := svc.UpdateProduct(ctx, "love", "vip", "x", earrings())
			return err
		},
		"missing product id": func() error {
			_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{Name: "No ID"})
			return err
		},
		"missing name": func() error {
			_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{ID: "n"})
			return err
		},
		"negative step": func() error {
			_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{ID: "n", Name: "N", Step: -1})
			return err
		},
		"incomplete variant": func() error {
			_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, models.JourneyProduct{
				ID: "n", Name: "N", Variants: []models.Variant{{Color: "gold"}},
			})
			return err
		},
		"delete bad client type": func() error {
			_, err := svc.DeleteProduct(ctx, "love", "gold", "x")
			return err
		},
	}
	for name, run := range cases {
		t.Run(name, func(t *testing.T) {
			err := run()
			assert.True(t, apierr.Is(err, apierr.CodeValidation), "got %v", err)
		})
	}
}

func TestUnknownJourney(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "nowhere", models.SoulLuxury, earrings())
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
	_, err = svc.SetWaitlistFlag(ctx, "nowhere", "x", true, "admin")
	assert.True(t, apierr.Is(err, apierr.CodeNotFound))
}

func TestCreateJourneyConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.CreateJourney(context.Background(), "love", "Again", "")
	assert.True(t, apierr.Is(err, apierr.CodeConflict))
	_, err = svc.CreateJourney(context.Background(), " ", "Blank", "")
	assert.True(t, apierr.Is(err, apierr.CodeValidation))
}

func TestSetWaitlistFlag(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.AddProduct(ctx, "love", models.SoulLuxury, earrings())
	require.NoError(t, err)

	j, err := svc.SetWaitlistFlag(ctx, "love", "aamoria-earrings-sl", true, "admin@aamoria.com")
	require.NoError(t, err)
	assert.Equal(t, models.ProductSetting{IsWaitlist: true, UpdatedAt: fixed, UpdatedBy: "admin@aamoria.com"},
		j.ProductSettings.Data()["aamoria-earrings-sl"])

	j, err = svc.SetWaitlistFlag(ctx, "love", "not-in-catalog", false, "admin@aamoria.com")
	require.NoError(t, err)
	settings := j.ProductSettings.Data()
	assert.Len(t, settings, 2)
	assert.True(t, settings["aamoria-earrings-sl"].IsWaitlist)
	assert.False(t, settings["not-in-catalog"].IsWaitlist)
	assert.Len(t, j.Content.Data().SoulLuxury, 1, "settings edits leave content untouched")
}

func TestStaleWriteIsRetried(t *testing.T) {
	svc, docs, _ := newTestService(t)
	ctx := context.Background()

	// Another admin adds a product between our load and our save, once.
	interfered := false
	docs.beforeSave = func(slug string) {
		if interfered {
			return
		}
		interfered = true
		other := newMemDocs()
		other.rows = docs.rows
		otherSvc := NewService(other, newMemMirror(), logger.Nop())
		_, err := otherSvc.AddProduct(ctx, slug, models.EnergyCurious, models.JourneyProduct{ID: "other", Name: "Other"})
		require.NoError(t, err)
	}

	j, err := svc.AddProduct(ctx, "love", models.SoulLuxury, earrings())
	require.NoError(t, err)
	assert.Len(t, j.Content.Data().SoulLuxury, 1)
	assert.Len(t, j.Content.Data().EnergyCurious, 1, "concurrent add must survive")
}

func TestStaleWriteGivesUp(t *testing.T) {
	svc, docs, _ := newTestService(t)
	docs.saveErr = ErrStale

	_, err := svc.AddProduct(context.Background(), "love", models.SoulLuxury, earrings())
	assert.True(t, apierr.Is(err, apierr.CodeConflict))
	assert.Equal(t, maxSaveAttempts, docs.saves)
}

func TestSaveFailureIsDependencyError(t *testing.T) {
	svc, docs, _ := newTestService(t)
	docs.saveErr = errUnreachable

	_, err := svc.AddProduct(context.Background(), "love", models.SoulLuxury, earrings())
	assert.True(t, apierr.Is(err, apierr.CodeDependency))
	assert.ErrorIs(t, err, errUnreachable)
}

func TestListJourneys(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.CreateJourney(context.Background(), "abundance", "Abundance", "")
	require.NoError(t, err)

	list, err := svc.ListJourneys(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "abundance", list[0].Slug)
}
