package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"voucherhub/internal/repository"
)

// CodeResolver finds a candidate code that no stored voucher uses yet.
// The lookup is advisory only: the unique index on vouchers.code decides
// races between concurrent issuers.
type CodeResolver struct {
	generator   *CodeGenerator
	voucherRepo repository.VoucherRepository
	length      int
	maxAttempts int
	logger      *zap.Logger
}

func NewCodeResolver(generator *CodeGenerator, voucherRepo repository.VoucherRepository, length, maxAttempts int, logger *zap.Logger) *CodeResolver {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &CodeResolver{
		generator:   generator,
		voucherRepo: voucherRepo,
		length:      length,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Resolve returns a code for acronym that is neither stored nor in reserved.
// reserved may be nil; it holds codes already drawn for the same batch.
func (r *CodeResolver) Resolve(ctx context.Context, acronym string, reserved map[string]struct{}) (string, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		code := r.generator.Generate(acronym, r.length)
		if _, dup := reserved[code]; dup {
			continue
		}

		exists, err := r.voucherRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", storageFailure("check voucher code", err)
		}
		if !exists {
			if attempt > 1 {
				r.logger.Debug("voucher code collision resolved",
					zap.String("acronym", acronym), zap.Int("attempts", attempt))
			}
			return code, nil
		}
	}

	r.logger.Error("voucher code generation exhausted",
		zap.String("acronym", acronym), zap.Int("attempts", r.maxAttempts))
	return "", fmt.Errorf("%w: no free code for %s after %d attempts", ErrGenerationExhausted, acronym, r.maxAttempts)
}
