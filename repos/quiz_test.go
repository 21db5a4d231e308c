package repos

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/models"
	"github.com/aamoria/wellness-api/testutil"
)

func TestQuizRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuizRepo(db, testutil.Logger(t))
	ctx := context.Background()

	second := &models.QuizQuestion{Text: "Second", Position: 2, Answers: []models.QuizAnswer{
		{Text: "Grounded", Chakra: "root", State: "stable", Weight: 0.5},
	}}
	first := &models.QuizQuestion{Text: "First", Position: 1, MultiSelect: true, Answers: []models.QuizAnswer{
		{Text: "Restless", Chakra: "root", State: "excess", Weight: 1},
		{Text: "Stuck", Chakra: "sacral", State: "deficit", Weight: -1},
	}}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.PublicID)
	assert.NotEqual(t, first.PublicID, second.PublicID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "First", list[0].Text)
	assert.Len(t, list[0].Answers, 2)
	assert.Equal(t, "sacral", list[0].Answers[1].Chakra)

	first.Text = "First, reworded"
	first.Position = 3
	require.NoError(t, repo.Update(ctx, first))
	got, err := repo.GetByPublicID(ctx, first.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "First, reworded", got.Text)
	assert.True(t, got.MultiSelect)

	require.NoError(t, repo.Delete(ctx, second.PublicID))
	assert.ErrorIs(t, repo.Delete(ctx, second.PublicID), journey.ErrNotFound)
	_, err = repo.GetByPublicID(ctx, second.PublicID)
	assert.ErrorIs(t, err, journey.ErrNotFound)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
