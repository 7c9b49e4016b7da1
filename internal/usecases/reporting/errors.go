package reporting

import (
	"errors"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// ErrorCode traduz erros das análises para os códigos da API
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, analytics.ErrInsufficientData):
		return apiErrors.ErrInsufficientData
	case errors.Is(err, analytics.ErrInvalidLag):
		return apiErrors.ErrInvalidLag
	case errors.Is(err, analytics.ErrUndefinedGrowth):
		return apiErrors.ErrUndefinedGrowth
	case errors.Is(err, analytics.ErrParse):
		return apiErrors.ErrParseRecord
	case errors.Is(err, analytics.ErrInvalidPeriod), errors.Is(err, analytics.ErrInvalidRankSize):
		return apiErrors.ErrInvalidRequest
	}
	return apiErrors.ErrInternalServer
}

// IsAnalyticsError indica falhas de cálculo, que não derrubam o painel inteiro
func IsAnalyticsError(err error) bool {
	return ErrorCode(err) != apiErrors.ErrInternalServer
}

func viewError(err error) *domain.ViewError {
	return &domain.ViewError{
		Code:    ErrorCode(err),
		Message: err.Error(),
	}
}
