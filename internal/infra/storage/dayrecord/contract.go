package dayrecord

import "github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"

// Переиспользуем интерфейс исполнителя запросов из dbmetrics,
// чтобы репозиторий работал и с *sql.DB, и с обёрткой метрик
type DBExecutor = dbmetrics.DBExecutor
