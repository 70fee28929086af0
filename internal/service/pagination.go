package service

import (
	"github.com/spec-kit/helpdesk-service/pkg/apperrors"
)

// pageWindow validates zero-indexed pagination parameters and converts them
// to a limit/offset window. The caller receives the true total alongside each
// page and is responsible for clamping out-of-range pages itself.
func pageWindow(page, pageSize int) (limit, offset int, err error) {
	if pageSize <= 0 {
		return 0, 0, apperrors.NewInvalidArgument("page_size must be positive", map[string]any{"page_size": pageSize})
	}
	if page < 0 {
		return 0, 0, apperrors.NewInvalidArgument("page must be non-negative", map[string]any{"page": page})
	}
	return pageSize, page * pageSize, nil
}
