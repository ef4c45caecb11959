package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки движка ещё не заданы.
	// Вызывающий код подставляет значения по умолчанию
	ErrSettingsNotFound = errors.New("settings.repository: engine settings not found")

	// ErrSettingsInvalid возвращается, когда сохранённые настройки
	// не описывают корректный календарь
	ErrSettingsInvalid = errors.New("settings.repository: engine settings are invalid")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
