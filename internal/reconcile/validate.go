package reconcile

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/dues-engine/internal/domain"
	customError "github.com/segyhp/dues-engine/pkg/errors"
)

var validate = validator.New()

var errNilRecord = errors.New("record is nil")

// ValidateSnapshot checks the input shape of every record: identifiers must be
// present and roles must be known. Business inconsistencies are not errors
// and are left to the Auditor.
func ValidateSnapshot(snap *domain.Snapshot) error {
	if snap == nil {
		return customError.WrapInvalidRecord("snapshot", 0, errNilRecord)
	}

	if err := ValidateMembers(snap.Members); err != nil {
		return err
	}
	if err := ValidateCollectors(snap.Collectors); err != nil {
		return err
	}
	if err := ValidatePaymentRequests(snap.PaymentRequests); err != nil {
		return err
	}
	for i := range snap.RoleAssignments {
		if err := validate.Struct(&snap.RoleAssignments[i]); err != nil {
			return customError.WrapInvalidRecord("role assignment", i, err)
		}
	}

	return nil
}

// ValidateMembers checks that every member is present and identified.
func ValidateMembers(members []*domain.Member) error {
	for i, m := range members {
		if err := check(m == nil, m); err != nil {
			return customError.WrapInvalidRecord("member", i, err)
		}
	}
	return nil
}

// ValidateCollectors checks that every collector is present, named and holds
// known roles.
func ValidateCollectors(collectors []*domain.Collector) error {
	for i, c := range collectors {
		if err := check(c == nil, c); err != nil {
			return customError.WrapInvalidRecord("collector", i, err)
		}
	}
	return nil
}

// ValidatePaymentRequests checks that every request names itself and a member.
func ValidatePaymentRequests(requests []*domain.PaymentRequest) error {
	for i, p := range requests {
		if err := check(p == nil, p); err != nil {
			return customError.WrapInvalidRecord("payment request", i, err)
		}
	}
	return nil
}

func check(isNil bool, record interface{}) error {
	if isNil {
		return errNilRecord
	}
	return validate.Struct(record)
}
