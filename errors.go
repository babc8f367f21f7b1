package nodelayout

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every DomainError through errors.Is.
var ErrDomain = errors.New("nodelayout: domain error")

// DomainError reports an integer argument outside the domain of a layout function.
type DomainError struct {
	Op     string
	Value  uint64
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("nodelayout: %s(%d): %s", e.Op, e.Value, e.Detail)
}

// Is makes errors.Is(err, ErrDomain) hold for any DomainError.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainError(op string, value uint64, detail string) error {
	return &DomainError{Op: op, Value: value, Detail: detail}
}
