package dayrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

// Repository репозиторий записей занятости дней (таблица day_records)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var dayColumns = []string{
	"date",
	"fully_booked",
	"manual_block",
	"booked_slots",
	"version",
	"created_at",
	"updated_at",
}

// GetByDate получает запись дня по дате
// Отсутствие записи - не ошибка бизнес-логики: возвращается ErrDayNotFound,
// вызывающий код работает с пустым днём (Version = 0)
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.DayRecord, error) {
	query, args, err := psqlbuilder.Select(dayColumns...).
		From("day_records").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	record, err := r.scanDay(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan day record: %v", ErrScanRow, err)
	}

	return record, nil
}

// GetRange получает все записи дней в диапазоне дат (включительно)
// Дни без записи полностью свободны и в результат не попадают
func (r *Repository) GetRange(ctx context.Context, from, to time.Time) ([]*domain.DayRecord, error) {
	query, args, err := psqlbuilder.Select(dayColumns...).
		From("day_records").
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.DayRecord, 0)
	for rows.Next() {
		record, err := r.scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRange - scan day record: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRange - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// Commit атомарно фиксирует новое состояние дня по схеме compare-and-set:
//   - rec.Version == 0: запись ещё не существовала, выполняется условный INSERT;
//     если запись уже создана конкурентным запросом - ErrVersionConflict
//   - rec.Version > 0: UPDATE с проверкой версии; если версия в БД отличается
//     от прочитанной - ErrVersionConflict
//
// При успехе rec.Version увеличивается на единицу. Запись либо применяется
// целиком, либо не применяется вовсе - частичных изменений не бывает
func (r *Repository) Commit(ctx context.Context, rec *domain.DayRecord) error {
	slots, err := json.Marshal(rec.BookedSlots)
	if err != nil {
		return fmt.Errorf("%w: Commit - marshal booked slots: %v", ErrBuildQuery, err)
	}

	if rec.Version == 0 {
		return r.insertDay(ctx, rec, slots)
	}
	return r.updateDay(ctx, rec, slots)
}

func (r *Repository) insertDay(ctx context.Context, rec *domain.DayRecord, slots []byte) error {
	query, args, err := psqlbuilder.Insert("day_records").
		Columns("date", "fully_booked", "manual_block", "booked_slots", "version").
		Values(rec.Date.Format(domain.DateFormat), rec.FullyBooked, rec.ManualBlock, slots, 1).
		Suffix("ON CONFLICT (date) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Commit - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Commit - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Commit - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		// Запись успела появиться между чтением и вставкой
		return ErrVersionConflict
	}

	rec.Version = 1
	return nil
}

func (r *Repository) updateDay(ctx context.Context, rec *domain.DayRecord, slots []byte) error {
	query, args, err := psqlbuilder.Update("day_records").
		Set("fully_booked", rec.FullyBooked).
		Set("booked_slots", slots).
		Set("version", rec.Version+1).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"date":    rec.Date.Format(domain.DateFormat),
			"version": rec.Version,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Commit - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Commit - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Commit - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVersionConflict
	}

	rec.Version++
	return nil
}

// Delete удаляет запись дня с проверкой версии
// Используется, когда отмена освобождает последний слот дня без ручной блокировки
func (r *Repository) Delete(ctx context.Context, date time.Time, version int64) error {
	query, args, err := psqlbuilder.Delete("day_records").
		Where(squirrel.Eq{
			"date":    date.Format(domain.DateFormat),
			"version": version,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVersionConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanDay(row rowScanner) (*domain.DayRecord, error) {
	var (
		record    domain.DayRecord
		slotsRaw  []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&record.Date,
		&record.FullyBooked,
		&record.ManualBlock,
		&slotsRaw,
		&record.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(slotsRaw, &record.BookedSlots); err != nil {
		return nil, err
	}
	if record.BookedSlots == nil {
		record.BookedSlots = make(domain.SlotMap)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
