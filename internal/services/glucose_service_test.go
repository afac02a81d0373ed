package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"gorm.io/gorm"
)

func newGlucoseFixture(t *testing.T) (*gorm.DB, *GlucoseService, string) {
	t.Helper()
	db := newTestDB(t)
	userSvc := NewUserService(db)
	user, err := userSvc.Signup(context.Background(), "glucose@example.com", "password1234", "Tester")
	require.NoError(t, err)
	return db, NewGlucoseService(db), user.ID
}

func TestGlucoseLogRoundTrip(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()

	notes := "after a long run"
	added, err := svc.Add(ctx, userID, GlucoseLogInput{
		MealType: database.MealBreakfast,
		Glycemia: 1.23,
		Dosage:   4.5,
		Notes:    &notes,
	})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)
	assert.False(t, added.Timestamp.IsZero())

	logs, err := svc.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1.23, logs[0].Glycemia)
	assert.Equal(t, 4.5, logs[0].Dosage)
	assert.Equal(t, database.MealBreakfast, logs[0].MealType)
	require.NotNil(t, logs[0].Notes)
	assert.Equal(t, "after a long run", *logs[0].Notes)
}

func TestGlucoseLogOrderingDescendingRegardlessOfInsertion(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Add(ctx, userID, GlucoseLogInput{
		Timestamp: now,
		MealType:  database.MealLunch,
		Glycemia:  1.1,
	})
	require.NoError(t, err)

	// Insert an earlier reading second.
	_, err = svc.Add(ctx, userID, GlucoseLogInput{
		Timestamp: now.Add(-2 * time.Hour),
		MealType:  database.MealBreakfast,
		Glycemia:  0.9,
	})
	require.NoError(t, err)

	logs, err := svc.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 1.1, logs[0].Glycemia)
	assert.Equal(t, 0.9, logs[1].Glycemia)
	assert.True(t, logs[0].Timestamp.After(logs[1].Timestamp))
}

func TestGlucoseLogValidation(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, GlucoseLogInput{MealType: database.MealSnack, Glycemia: 0})
	assert.Error(t, err)

	_, err = svc.Add(ctx, userID, GlucoseLogInput{MealType: database.MealSnack, Glycemia: 1.0, Dosage: -1})
	assert.Error(t, err)

	_, err = svc.Add(ctx, userID, GlucoseLogInput{MealType: "Brunch", Glycemia: 1.0})
	assert.Error(t, err)
}

func TestGlucoseLogUpdate(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()

	added, err := svc.Add(ctx, userID, GlucoseLogInput{MealType: database.MealDinner, Glycemia: 1.4, Dosage: 6})
	require.NoError(t, err)

	added.Glycemia = 1.6
	added.MealType = database.MealSnack
	updated, err := svc.Update(ctx, added)
	require.NoError(t, err)
	assert.Equal(t, 1.6, updated.Glycemia)
	assert.Equal(t, database.MealSnack, updated.MealType)
}

func TestGlucoseLogUpdateMissingRow(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)

	_, err := svc.Update(context.Background(), &database.GlucoseLog{
		ID:        "no-such-log",
		UserID:    userID,
		Timestamp: time.Now(),
		MealType:  database.MealFasting,
		Glycemia:  1.0,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGlucoseLogDeleteMany(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		log, err := svc.Add(ctx, userID, GlucoseLogInput{
			Timestamp: time.Now().Add(time.Duration(i) * time.Minute),
			MealType:  database.MealNone,
			Glycemia:  1.0 + float64(i)/10,
		})
		require.NoError(t, err)
		ids = append(ids, log.ID)
	}

	// Empty set mutates nothing.
	require.NoError(t, svc.DeleteMany(ctx, userID, nil))
	logs, err := svc.GetAll(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, logs, 4)

	// Deleting two removes exactly those two.
	require.NoError(t, svc.DeleteMany(ctx, userID, []string{ids[0], ids[2]}))
	logs, err = svc.GetAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	remaining := map[string]bool{logs[0].ID: true, logs[1].ID: true}
	assert.True(t, remaining[ids[1]])
	assert.True(t, remaining[ids[3]])
}

func TestGlucoseLogDeleteMissingIsNoOp(t *testing.T) {
	_, svc, userID := newGlucoseFixture(t)
	assert.NoError(t, svc.Delete(context.Background(), userID, "no-such-log"))
}

func TestGlucoseLogOwnershipScoping(t *testing.T) {
	db, svc, userID := newGlucoseFixture(t)
	ctx := context.Background()

	other, err := NewUserService(db).Signup(ctx, "other@example.com", "password1234", "Other")
	require.NoError(t, err)
	theirs, err := svc.Add(ctx, other.ID, GlucoseLogInput{MealType: database.MealLunch, Glycemia: 2.0})
	require.NoError(t, err)

	// Reads never leak another user's rows.
	logs, err := svc.GetAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, logs)

	// Deletes scoped to the caller leave the other user's row intact.
	require.NoError(t, svc.Delete(ctx, userID, theirs.ID))
	otherLogs, err := svc.GetAll(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, otherLogs, 1)

	// Updates scoped to the caller don't touch the row either.
	theirs.UserID = userID
	theirs.Glycemia = 9.9
	_, err = svc.Update(ctx, theirs)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
