package sqlstore

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/caresync-api/internal/config"
	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/pkg/metrics"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := NewDB(config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newMed(name, at string) *model.Medication {
	return &model.Medication{
		Name:            name,
		Dose:            "100mg",
		Frequency:       string(model.FrequencyOnceDaily),
		Time:            at,
		ReminderEnabled: true,
		ReminderChannel: model.ReminderChannelAll,
	}
}

func TestMedicationRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationRepository(NewBaseRepository(db, metrics.New("test")))
	ctx := context.Background()

	id1, err := repo.Create(ctx, newMed("Aspirin", "09:00:00"))
	require.NoError(t, err)
	disabled := newMed("Vitamin D", "20:00:00")
	disabled.ReminderEnabled = false
	disabled.ReminderChannel = model.ReminderChannelEmail
	id2, err := repo.Create(ctx, disabled)
	require.NoError(t, err)
	assert.Equal(t, id2, disabled.ID)
	assert.Greater(t, id2, id1)

	meds, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, meds, 2)
	assert.Equal(t, "Aspirin", meds[0].Name)
	assert.Equal(t, "09:00:00", meds[0].Time)
	assert.True(t, meds[0].ReminderEnabled)
	assert.False(t, meds[1].ReminderEnabled)
	assert.Equal(t, model.ReminderChannelEmail, meds[1].ReminderChannel)
}

func TestMedicationRepository_LogIsPerDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	id, err := repo.Create(ctx, newMed("Aspirin", "09:00:00"))
	require.NoError(t, err)
	require.NoError(t, repo.Log(ctx, id, "2026-03-01", model.AdherenceTaken))

	meds, logs, err := repo.ListForDay(ctx, "2026-03-01")
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, model.AdherenceTaken, logs[id])

	_, logs, err = repo.ListForDay(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestMedicationRepository_LogUpserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	id, err := repo.Create(ctx, newMed("Aspirin", "09:00:00"))
	require.NoError(t, err)

	require.NoError(t, repo.Log(ctx, id, "2026-03-01", model.AdherenceTaken))
	require.NoError(t, repo.Log(ctx, id, "2026-03-01", model.AdherenceTaken))
	require.NoError(t, repo.Log(ctx, id, "2026-03-01", model.AdherenceMissed))

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM medication_logs WHERE medication_id = ?`, id))
	assert.Equal(t, 1, count)

	_, logs, err := repo.ListForDay(ctx, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, model.AdherenceMissed, logs[id])
}

func TestMedicationRepository_LogUnknownMedication(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, 999, "2026-03-01", model.AdherenceTaken))

	logs, err := repo.History(ctx, "2026-03-01", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(999), logs[0].MedicationID)
}

func TestMedicationRepository_History(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMedicationRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	id, err := repo.Create(ctx, newMed("Aspirin", "09:00:00"))
	require.NoError(t, err)
	for _, day := range []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"} {
		require.NoError(t, repo.Log(ctx, id, day, model.AdherenceTaken))
	}

	logs, err := repo.History(ctx, "2026-02-28", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2026-02-28", logs[0].LogDate)
	assert.Equal(t, "2026-03-01", logs[1].LogDate)
}

func TestMoodRepository_Recent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMoodRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	days := []string{"2026-03-02", "2026-03-01", "2026-03-03"}
	for i, day := range days {
		_, err := repo.Create(ctx, &model.MoodEntry{Score: i + 1, Emoji: "🙂", Date: day})
		require.NoError(t, err)
	}
	// same-day entries come back newest insert first
	_, err := repo.Create(ctx, &model.MoodEntry{Score: 5, Emoji: "😃", Date: "2026-03-03"})
	require.NoError(t, err)

	moods, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, moods, 3)
	assert.Equal(t, 5, moods[0].Score)
	assert.Equal(t, "2026-03-03", moods[1].Date)
	assert.Equal(t, 3, moods[1].Score)
	assert.Equal(t, "2026-03-02", moods[2].Date)
}

func TestMoodRepository_RejectsOutOfRangeScore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMoodRepository(NewBaseRepository(db, nil))

	_, err := repo.Create(context.Background(), &model.MoodEntry{Score: 7, Emoji: "?", Date: "2026-03-01"})
	assert.Error(t, err)
}

func TestJournalRepository_CreateAndRecent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepository(NewBaseRepository(db, nil))
	ctx := context.Background()

	entry := &model.JournalEntry{Text: "Slept badly", Kind: model.JournalQuick, Date: "2026-03-01"}
	id, err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)

	_, err = repo.Create(ctx, &model.JournalEntry{Text: "Long walk, felt calm", Kind: model.JournalFull, Date: "2026-03-02"})
	require.NoError(t, err)

	entries, err := repo.Recent(ctx, 30)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Long walk, felt calm", entries[0].Text)
	assert.Equal(t, model.JournalFull, entries[0].Kind)
	assert.Equal(t, model.JournalQuick, entries[1].Kind)
}

func TestDataSource(t *testing.T) {
	driver, dsn, err := dataSource(config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, driver)
	assert.Equal(t, "caresync.db", dsn)

	driver, dsn, err = dataSource(config.DatabaseConfig{
		Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", Name: "caresync", SSLMode: "disable",
	})
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, driver)
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=caresync sslmode=disable", dsn)

	_, _, err = dataSource(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
