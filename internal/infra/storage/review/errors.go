package review

import "errors"

var (
	// ErrReviewExists возвращается при повторном отзыве на то же бронирование
	ErrReviewExists = errors.New("review.repository: review already exists for booking")

	ErrBuildQuery = errors.New("review.repository: failed to build query")
	ErrExecQuery  = errors.New("review.repository: failed to execute query")
	ErrScanRow    = errors.New("review.repository: failed to scan row")
)
