package simpletxmanager

import "errors"

var (
	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("simpletxmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке коммита транзакции
	ErrCommit = errors.New("simpletxmanager: failed to commit transaction")

	// ErrRollback возвращается при ошибке отката транзакции
	ErrRollback = errors.New("simpletxmanager: failed to rollback transaction")
)
