package booking

import (
	"github.com/m04kA/SMC-VenueBookingService/pkg/txmanager"
)

// Переиспользуем интерфейсы txmanager для работы с БД: репозиторий
// прозрачно выполняется и в транзакции из контекста, и без неё
type DBExecutor = txmanager.DBExecutor
type TxExecutor = txmanager.TxExecutor
