package onboard_provider

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers/models"
)

type ProviderService interface {
	Onboard(ctx context.Context, req *models.OnboardRequest) (*models.ProviderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
