package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-backend/internal/shared/storage/db"
)

func setupSQLiteRepo(t *testing.T) *SQLRepo {
	t.Helper()
	ctx := context.Background()

	dsn, err := db.BuildDSN(db.SQLite, db.DSNParts{Name: ":memory:"})
	require.NoError(t, err)
	conn, err := db.Connect(ctx, db.SQLite, dsn, db.DefaultCLIOptions())
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(ctx, conn, db.SQLite))
	return &SQLRepo{DB: conn, Dialect: db.SQLite}
}

func TestSQLiteRepoLifecycle(t *testing.T) {
	repo := setupSQLiteRepo(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	end := "2020-12-31"
	firstID, err := repo.Create(ctx, Job{Company: "Acme", Title: "Dev", Description: "Built APIs", StartDate: "2019-02-01", EndDate: &end})
	require.NoError(t, err)
	secondID, err := repo.Create(ctx, Job{Company: "Globex", Title: "Lead", Description: "Led", StartDate: "2021-01-15"})
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	got, err := repo.Get(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, "2019-02-01", got[0].StartDate)
	assert.Equal(t, "2020-12-31", got[0].EndDateText())

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, firstID, list[0].ID)
	assert.Nil(t, list[1].EndDate)
	assert.Equal(t, OngoingPlaceholder, list[1].EndDateText())

	exists, err := repo.Exists(ctx, "2")
	require.NoError(t, err)
	assert.True(t, exists)

	affected, err := repo.Update(ctx, "2", Job{Company: "Globex", Title: "Director", Description: "Led more", StartDate: "2021-01-15", EndDate: &end})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err = repo.Get(ctx, "2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Director", got[0].Title)
	assert.Equal(t, "2020-12-31", got[0].EndDateText())

	affected, err = repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	exists, err = repo.Exists(ctx, "1")
	require.NoError(t, err)
	assert.False(t, exists)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteServiceUnknownIDLeavesTableUnchanged(t *testing.T) {
	repo := setupSQLiteRepo(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = svc.Update(ctx, "42", validInput())
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
