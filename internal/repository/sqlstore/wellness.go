package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/repository"
)

type moodRepository struct {
	*BaseRepository
}

type journalRepository struct {
	*BaseRepository
}

func NewMoodRepository(base *BaseRepository) repository.MoodRepository {
	return &moodRepository{BaseRepository: base}
}

func NewJournalRepository(base *BaseRepository) repository.JournalRepository {
	return &journalRepository{BaseRepository: base}
}

func (r *moodRepository) Create(ctx context.Context, mood *model.MoodEntry) (id int64, err error) {
	defer r.observe("mood_create", time.Now(), &err)

	query := r.q(`INSERT INTO moods (score, emoji, mood_date) VALUES (?, ?, ?) RETURNING id`)
	if err = r.db.GetContext(ctx, &id, query, mood.Score, mood.Emoji, mood.Date); err != nil {
		return 0, fmt.Errorf("failed to create mood: %w", err)
	}
	mood.ID = id
	return id, nil
}

func (r *moodRepository) Recent(ctx context.Context, limit int) (moods []*model.MoodEntry, err error) {
	defer r.observe("mood_recent", time.Now(), &err)

	query := r.q(`
		SELECT id, score, emoji, mood_date
		FROM moods
		ORDER BY mood_date DESC, id DESC
		LIMIT ?
	`)
	if err = r.db.SelectContext(ctx, &moods, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}
	return moods, nil
}

func (r *journalRepository) Create(ctx context.Context, entry *model.JournalEntry) (id int64, err error) {
	defer r.observe("journal_create", time.Now(), &err)

	query := r.q(`INSERT INTO journals (entry, kind, journal_date) VALUES (?, ?, ?) RETURNING id`)
	if err = r.db.GetContext(ctx, &id, query, entry.Text, entry.Kind, entry.Date); err != nil {
		return 0, fmt.Errorf("failed to create journal entry: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *journalRepository) Recent(ctx context.Context, limit int) (entries []*model.JournalEntry, err error) {
	defer r.observe("journal_recent", time.Now(), &err)

	query := r.q(`
		SELECT id, entry, kind, journal_date
		FROM journals
		ORDER BY journal_date DESC, id DESC
		LIMIT ?
	`)
	if err = r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, nil
}
