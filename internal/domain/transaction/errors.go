package transaction

import "errors"

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidStatus        = errors.New("invalid transaction status")
	ErrAlreadyCompleted     = errors.New("transaction already completed")
	ErrStatusNotTransitable = errors.New("transaction status cannot change from its current state")
)
