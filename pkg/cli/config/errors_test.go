package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/cli/config"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		config.ErrInvalidConfig,
		config.ErrInvalidBackend,
		config.ErrMissingAuthConfig,
		config.ErrInvalidLogLevel,
		config.ErrInvalidLogFormat,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			gt.V(t, errors.Is(a, b)).Equal(i == j)
		}
	}
}
