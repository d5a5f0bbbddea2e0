package repositories

import "context"

// TxFunc выполняется внутри транзакции с репозиторием, привязанным к ней.
type TxFunc func(ctx context.Context, users UserRepository) error

// Transactor выполняет fn в одной транзакции: фиксирует при успехе,
// откатывает при любой ошибке или панике.
type Transactor interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}
