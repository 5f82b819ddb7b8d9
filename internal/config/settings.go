package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Settings holds runtime values that can be overridden from the environment.
// CLI flags take precedence where both exist (see cmd/go-ctfcal).
type Settings struct {
	Endpoint    string        `env:"CTFCAL_ENDPOINT" envDefault:"https://ctftime.org/api/v1/events/"`
	UserAgent   string        `env:"CTFCAL_USER_AGENT"`
	HTTPTimeout time.Duration `env:"CTFCAL_HTTP_TIMEOUT" envDefault:"30s"`
	Language    string        `env:"CTFCAL_LANG" envDefault:"en"`
}

// LoadSettings parses the environment into Settings and validates the result.
func LoadSettings() (*Settings, error) {
	s := &Settings{
		UserAgent: UserAgent,
	}

	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettings, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the values env.Parse cannot enforce by itself.
func (s *Settings) Validate() error {
	if s.Endpoint == "" {
		return errors.New(ErrEndpointEmpty)
	}
	if s.HTTPTimeout <= 0 {
		return errors.New(ErrTimeoutInvalid)
	}
	if s.UserAgent == "" {
		s.UserAgent = UserAgent
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	return nil
}
