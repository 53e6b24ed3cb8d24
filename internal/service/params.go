package service

import (
	"github.com/readysethq/ratecard/internal/config"
	"github.com/readysethq/ratecard/internal/domain/policy"
	"github.com/readysethq/ratecard/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger   *logger.Logger
	Config   *config.Configuration
	Registry *policy.Registry
}
