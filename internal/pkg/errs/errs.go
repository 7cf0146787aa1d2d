package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for value-level validation failures.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrVersionIsInvalid  = errors.New("version is invalid")
)

// Sentinel errors for the domain error taxonomy. Handlers and the HTTP layer
// classify failures with errors.Is against these.
var (
	// ErrInvalidState marks an operation that is not valid in the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")

	// ErrDuplicateBid marks a second pending bid by the same courier on the
	// same delivery request.
	ErrDuplicateBid = errors.New("duplicate bid")

	// ErrUnauthorized marks a caller that lacks the role or ownership an
	// operation requires.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrHandoverRejected marks a relay handover whose acknowledgement
	// deadline has passed.
	ErrHandoverRejected = errors.New("handover rejected")

	// ErrValidationLocked marks a delivery whose proof-of-delivery validation
	// is temporarily locked after repeated mismatches.
	ErrValidationLocked = errors.New("validation locked")

	// ErrPeriodAlreadyOpen marks an attempt to open a second billing period
	// for a party that already has one open.
	ErrPeriodAlreadyOpen = errors.New("billing period already open")

	// ErrConflict marks a mutation that lost a concurrent race. It is the only
	// error in the taxonomy a caller is expected to retry automatically.
	ErrConflict = errors.New("concurrent modification conflict")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError reports that an object with a given identifier does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports an invalid parameter value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without a cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %s)", sanitize(e.Cause))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports an optimistic-lock version mismatch detected
// while restoring an aggregate from persistence.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidStateError reports an operation attempted in the wrong lifecycle
// state. Expected and Actual are surfaced so callers can explain the rejection.
type InvalidStateError struct {
	Entity   string
	Expected string
	Actual   string
}

// NewInvalidStateError creates an InvalidStateError describing the expected
// and actual states of the entity.
func NewInvalidStateError(entity, expected, actual string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Expected: expected, Actual: actual}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s expected %s, actual %s", ErrInvalidState, e.Entity, e.Expected, e.Actual)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// DuplicateBidError reports a second pending bid by the same courier on the
// same delivery request.
type DuplicateBidError struct {
	RequestID string
	CourierID string
}

// NewDuplicateBidError creates a DuplicateBidError for the given request and courier.
func NewDuplicateBidError(requestID, courierID string) *DuplicateBidError {
	return &DuplicateBidError{RequestID: requestID, CourierID: courierID}
}

func (e *DuplicateBidError) Error() string {
	return fmt.Sprintf("%s: courier %s already has a pending bid on request %s",
		ErrDuplicateBid, e.CourierID, e.RequestID)
}

func (e *DuplicateBidError) Unwrap() error {
	return ErrDuplicateBid
}

// UnauthorizedError reports a caller that lacks the role or ownership an
// operation requires.
type UnauthorizedError struct {
	ActorID   string
	Operation string
}

// NewUnauthorizedError creates an UnauthorizedError for the given actor and operation.
func NewUnauthorizedError(actorID, operation string) *UnauthorizedError {
	return &UnauthorizedError{ActorID: actorID, Operation: operation}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrUnauthorized, e.ActorID, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// HandoverRejectedError reports a relay handover whose acknowledgement
// deadline elapsed before the next courier confirmed pickup.
type HandoverRejectedError struct {
	DeliveryID string
	Deadline   time.Time
}

// NewHandoverRejectedError creates a HandoverRejectedError for the given delivery.
func NewHandoverRejectedError(deliveryID string, deadline time.Time) *HandoverRejectedError {
	return &HandoverRejectedError{DeliveryID: deliveryID, Deadline: deadline}
}

func (e *HandoverRejectedError) Error() string {
	return fmt.Sprintf("%s: delivery %s acknowledgement deadline %s elapsed",
		ErrHandoverRejected, e.DeliveryID, e.Deadline.UTC().Format(time.RFC3339))
}

func (e *HandoverRejectedError) Unwrap() error {
	return ErrHandoverRejected
}

// ValidationLockedError reports that proof-of-delivery validation is
// temporarily locked. The message deliberately does not say whether the
// lockout stems from the attempt count or the code's age.
type ValidationLockedError struct {
	DeliveryID string
}

// NewValidationLockedError creates a ValidationLockedError for the given delivery.
func NewValidationLockedError(deliveryID string) *ValidationLockedError {
	return &ValidationLockedError{DeliveryID: deliveryID}
}

func (e *ValidationLockedError) Error() string {
	return fmt.Sprintf("%s: delivery %s, try again later", ErrValidationLocked, e.DeliveryID)
}

func (e *ValidationLockedError) Unwrap() error {
	return ErrValidationLocked
}

// PeriodAlreadyOpenError reports that a party already has an open billing period.
type PeriodAlreadyOpenError struct {
	PartyID string
}

// NewPeriodAlreadyOpenError creates a PeriodAlreadyOpenError for the given party.
func NewPeriodAlreadyOpenError(partyID string) *PeriodAlreadyOpenError {
	return &PeriodAlreadyOpenError{PartyID: partyID}
}

func (e *PeriodAlreadyOpenError) Error() string {
	return fmt.Sprintf("%s: party %s", ErrPeriodAlreadyOpen, e.PartyID)
}

func (e *PeriodAlreadyOpenError) Unwrap() error {
	return ErrPeriodAlreadyOpen
}

// ConflictError reports a mutation that lost a concurrent race. The same
// logical intent can be safely resubmitted.
type ConflictError struct {
	Entity string
	ID     string
}

// NewConflictError creates a ConflictError for the given entity and identifier.
func NewConflictError(entity, id string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Entity, e.ID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
