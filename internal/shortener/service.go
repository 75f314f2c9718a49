package shortener

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how many codes Shorten tries before giving up.
const DefaultMaxAttempts = 5

// Service creates and resolves short links.
type Service struct {
	store        Repository
	validator    *Validator
	generateCode CodeGenerator
	maxAttempts  int
	logger       *zap.Logger
}

// NewService creates a service. A non-positive maxAttempts falls back to DefaultMaxAttempts.
func NewService(
	store Repository,
	validator *Validator,
	generator CodeGenerator,
	maxAttempts int,
	logger *zap.Logger,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Service{
		store:        store,
		validator:    validator,
		generateCode: generator,
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// Shorten validates rawURL and stores it under a freshly generated code.
// A taken code is replaced by a new one until the attempt budget runs out.
func (s *Service) Shorten(ctx context.Context, rawURL string) (*Link, error) {
	target, err := s.validator.Validate(rawURL)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		link := &Link{
			Code:      Code(s.generateCode()),
			TargetURL: target,
		}

		err = s.store.Insert(ctx, link)
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrDuplicateCode) {
			return nil, err
		}

		s.logger.Warn("short code collision",
			zap.String("code", string(link.Code)),
			zap.Int("attempt", attempt),
		)
	}

	return nil, fmt.Errorf("%w: %d attempts", ErrExhaustedRetries, s.maxAttempts)
}

// Resolve returns the target URL stored under code. Codes are matched exactly.
func (s *Service) Resolve(ctx context.Context, code Code) (string, error) {
	link, err := s.store.Lookup(ctx, code)
	if err != nil {
		return "", err
	}

	return link.TargetURL, nil
}
