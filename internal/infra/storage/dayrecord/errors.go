package dayrecord

import "errors"

var (
	// ErrDayNotFound возвращается, когда запись дня отсутствует.
	// Вызывающий код трактует это как полностью свободный день, а не как ошибку
	ErrDayNotFound = errors.New("dayrecord.repository: day record not found")

	// ErrVersionConflict возвращается, когда commit не прошёл проверку версии:
	// состояние дня изменилось после чтения. Вызывающий код обязан повторить
	// весь цикл чтение-вычисление-запись
	ErrVersionConflict = errors.New("dayrecord.repository: version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dayrecord.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dayrecord.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dayrecord.repository: failed to scan row")
)
