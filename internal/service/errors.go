package service

import (
	"errors"
	"fmt"

	"voucherhub/internal/model"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrAttendantNotFound   = errors.New("attendant not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrInvalidTransition   = errors.New("invalid voucher transition")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCount        = errors.New("invalid voucher count")
	ErrGenerationExhausted = errors.New("voucher code generation exhausted")
	ErrStorageFailure      = errors.New("storage failure")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAcronymTaken        = errors.New("company acronym already exists")
	ErrEmailTaken          = errors.New("email already registered")
)

// TransitionError reports a state machine violation together with the
// voucher's status at the time of the attempt.
type TransitionError struct {
	Code   string
	Action string
	Status model.VoucherStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s voucher %s: voucher is %s", e.Action, e.Code, e.Status)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func storageFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageFailure, op, err)
}
