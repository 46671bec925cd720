package service

import "errors"

var (
	ErrBusy                 = errors.New("another request is already in progress")
	ErrNutritionUnavailable = errors.New("분석에 실패했습니다.")
	ErrCoachUnavailable     = errors.New("죄송합니다. 답변을 생성하는 중 오류가 발생했습니다.")
	ErrInvalidEntry         = errors.New("invalid log entry")
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrPhotoNotFound        = errors.New("body check photo not found")
	ErrResetNotConfirmed    = errors.New("reset not confirmed")
	ErrEmptyMessage         = errors.New("message is required")
	ErrEmptyDescription     = errors.New("food description is required")
)
