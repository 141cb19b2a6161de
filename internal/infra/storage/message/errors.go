package message

import "errors"

var (
	ErrBuildQuery = errors.New("message.repository: failed to build query")
	ErrExecQuery  = errors.New("message.repository: failed to execute query")
	ErrScanRow    = errors.New("message.repository: failed to scan row")
)
