package settings

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsColumnsList = []string{
	"open_hour", "close_hour", "min_consecutive_hours", "two_cleaner_threshold", "max_commit_attempts",
}

func TestGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM engine_settings WHERE id = .+").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(settingsColumnsList).AddRow(7, 20, 2, 4, 5))

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, settings.OpenHour)
		assert.Equal(t, 20, settings.CloseHour)
		assert.Equal(t, 2, settings.MinConsecutiveHours)
		assert.Equal(t, 4, settings.TwoCleanerThreshold)
		assert.Equal(t, 5, settings.MaxCommitAttempts)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .+ FROM engine_settings WHERE id = .+").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(settingsColumnsList))

		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("InvalidSettingsRejected", func(t *testing.T) {
		// Открытие позже закрытия - строка есть, но календарь непригоден
		mock.ExpectQuery("SELECT .+ FROM engine_settings WHERE id = .+").
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(settingsColumnsList).AddRow(20, 7, 2, 4, 5))

		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, ErrSettingsInvalid)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
