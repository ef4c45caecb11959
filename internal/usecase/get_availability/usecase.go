package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/infra/cache"
	settingsRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/settings"
)

// максимальная ширина запрашиваемого диапазона в днях
const maxRangeDays = 92

// Request модель запроса доступности для отрисовки календаря
type Request struct {
	From time.Time // Начало диапазона (включительно)
	To   time.Time // Конец диапазона (включительно)
}

// Day доступность одного дня
type Day struct {
	Date        string // YYYY-MM-DD
	Unavailable bool   // Полностью занят или заблокирован вручную
	FullyBooked bool   // Производный флаг: нет непрерывного свободного окна
	FreeSlots   []int  // Свободные начальные часы по возрастанию
}

// Response модель ответа со списком дней
type Response struct {
	Days             []Day    // По одному элементу на каждую дату диапазона
	UnavailableDates []string // Даты, недоступные для бронирования
}

// UseCase use case получения доступности дней.
// Читает через кеш; дни без записи в хранилище полностью свободны
type UseCase struct {
	dayRepo      DayRecordRepository
	settingsRepo SettingsRepository
	cache        AvailabilityCache
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	dayRepo DayRecordRepository,
	settingsRepo SettingsRepository,
	availabilityCache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		dayRepo:      dayRepo,
		settingsRepo: settingsRepo,
		cache:        availabilityCache,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: from=%s, to=%s",
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to date is before from date", ErrInvalidInput)
	}
	rangeDays := int(req.To.Sub(req.From).Hours()/24) + 1
	if rangeDays > maxRangeDays {
		return nil, fmt.Errorf("%w: %d days requested, limit is %d", ErrRangeTooWide, rangeDays, maxRangeDays)
	}

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailability: failed to get engine settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get engine settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultEngineSettings()
	}

	// Первый проход - кеш. Промахи добираются одним запросом диапазона
	days := make([]Day, rangeDays)
	missed := make([]int, 0, rangeDays)
	for i := 0; i < rangeDays; i++ {
		date := req.From.AddDate(0, 0, i).Format(domain.DateFormat)
		entry, err := uc.cache.GetDay(ctx, date)
		if err != nil {
			uc.logger.Warn("GetAvailability: cache read failed for %s: %v", date, err)
			entry = nil
		}
		if entry == nil {
			days[i] = Day{Date: date}
			missed = append(missed, i)
			continue
		}
		days[i] = Day{
			Date:        entry.Date,
			Unavailable: entry.Unavailable,
			FullyBooked: entry.FullyBooked,
			FreeSlots:   entry.FreeSlots,
		}
	}

	if len(missed) > 0 {
		if err := uc.fillFromStore(ctx, req, settings, days, missed); err != nil {
			return nil, err
		}
	}

	unavailable := make([]string, 0)
	for _, day := range days {
		if day.Unavailable {
			unavailable = append(unavailable, day.Date)
		}
	}

	uc.logger.Info("GetAvailability: %d days, %d unavailable, %d cache misses",
		rangeDays, len(unavailable), len(missed))

	return &Response{Days: days, UnavailableDates: unavailable}, nil
}

// fillFromStore дозаполняет пропущенные кешем дни из хранилища
func (uc *UseCase) fillFromStore(
	ctx context.Context,
	req *Request,
	settings domain.EngineSettings,
	days []Day,
	missed []int,
) error {
	records, err := uc.dayRepo.GetRange(ctx, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to read day records: %v", err)
		return fmt.Errorf("%w: failed to read day records: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.DayRecord, len(records))
	for _, record := range records {
		byDate[record.Date.Format(domain.DateFormat)] = record
	}

	emptyDay := domain.NewDayRecord(time.Time{})
	for _, i := range missed {
		record, ok := byDate[days[i].Date]
		if !ok {
			record = emptyDay
		}

		days[i].Unavailable = record.IsUnavailable()
		days[i].FullyBooked = record.FullyBooked
		days[i].FreeSlots = record.FreeSlots(settings)

		entry := &cache.DayAvailability{
			Date:        days[i].Date,
			Unavailable: days[i].Unavailable,
			FullyBooked: days[i].FullyBooked,
			FreeSlots:   days[i].FreeSlots,
		}
		if err := uc.cache.SetDay(ctx, entry); err != nil {
			uc.logger.Warn("GetAvailability: cache write failed for %s: %v", days[i].Date, err)
		}
	}

	return nil
}
