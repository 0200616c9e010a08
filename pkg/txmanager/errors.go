package txmanager

import "errors"

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке коммита транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrRollback возвращается при ошибке отката транзакции
	ErrRollback = errors.New("txmanager: failed to rollback transaction")
)
