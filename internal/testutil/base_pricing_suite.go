package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/readysethq/ratecard/internal/config"
	"github.com/readysethq/ratecard/internal/domain/policy"
	"github.com/readysethq/ratecard/internal/logger"
	"github.com/readysethq/ratecard/internal/validator"
)

// BasePricingTestSuite provides common functionality for pricing test suites:
// a logger, a default configuration, and a registry loaded with the fixture
// clients.
type BasePricingTestSuite struct {
	suite.Suite
	ctx      context.Context
	logger   *logger.Logger
	config   *config.Configuration
	registry *policy.Registry
}

// SetupSuite is called once before running the tests in the suite
func (s *BasePricingTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BasePricingTestSuite) SetupTest() {
	s.ctx = context.Background()

	var err error
	s.registry, err = policy.NewRegistry([]*policy.ClientConfiguration{
		CaterValleyConfiguration(),
		ReadySetStandardConfiguration(),
	})
	if err != nil {
		s.T().Fatalf("failed to create registry: %v", err)
	}
}

func (s *BasePricingTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BasePricingTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BasePricingTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BasePricingTestSuite) GetRegistry() *policy.Registry {
	return s.registry
}
