package domain

// errors.go defines domain-specific error types.
type domainErr struct {
	message string
}

// Error returns the error message.
func (e domainErr) Error() string {
	return e.message
}

// NotFoundErr represents an error when a requested entity is not found.
type NotFoundErr struct {
	domainErr
}

// NewNotFoundErr creates a new NotFoundErr with the given message.
func NewNotFoundErr(message string) *NotFoundErr {
	return &NotFoundErr{
		domainErr: domainErr{message: message},
	}
}

// ValidationErr represents an error when validation fails.
type ValidationErr struct {
	domainErr
}

// NewValidationErr creates a new ValidationErr with the given message.
func NewValidationErr(message string) *ValidationErr {
	return &ValidationErr{
		domainErr: domainErr{message: message},
	}
}

// MalformedReplyErr represents a model reply that is neither a final answer
// nor a well-formed action request against the presented catalog.
type MalformedReplyErr struct {
	domainErr
}

// NewMalformedReplyErr creates a new MalformedReplyErr with the given message.
func NewMalformedReplyErr(message string) *MalformedReplyErr {
	return &MalformedReplyErr{
		domainErr: domainErr{message: message},
	}
}

// BackendUnavailableErr represents an inventory backend that could not be
// reached at all (transport failure or timeout).
type BackendUnavailableErr struct {
	domainErr
}

// NewBackendUnavailableErr creates a new BackendUnavailableErr with the given message.
func NewBackendUnavailableErr(message string) *BackendUnavailableErr {
	return &BackendUnavailableErr{
		domainErr: domainErr{message: message},
	}
}

// BackendQueryErr represents an inventory backend that was reached but
// rejected or failed the query.
type BackendQueryErr struct {
	domainErr
}

// NewBackendQueryErr creates a new BackendQueryErr with the given message.
func NewBackendQueryErr(message string) *BackendQueryErr {
	return &BackendQueryErr{
		domainErr: domainErr{message: message},
	}
}

// BudgetExceededErr represents an exchange that consumed its step or
// correction budget before producing an answer.
type BudgetExceededErr struct {
	domainErr
	// LastPendingAction names the action the model was still trying to call
	// when the budget ran out, when known.
	LastPendingAction string
}

// NewBudgetExceededErr creates a new BudgetExceededErr with the given message.
func NewBudgetExceededErr(message, lastPendingAction string) *BudgetExceededErr {
	return &BudgetExceededErr{
		domainErr:         domainErr{message: message},
		LastPendingAction: lastPendingAction,
	}
}
