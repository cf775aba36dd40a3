package models

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid topology or partition parameters.
	// It aborts the current scenario only.
	ErrConfiguration = errors.New("configuration error")

	// ErrProvisioningEmpty marks a scenario whose datacenters, VMs or
	// workload units ended up empty.
	ErrProvisioningEmpty = errors.New("provisioning produced an empty list")

	// ErrEngineFailure marks an error raised by the simulation engine.
	ErrEngineFailure = errors.New("simulation engine failure")
)

// ConfigurationError reports an invalid configuration value
type ConfigurationError struct {
	Subject string
	Field   string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s %s", e.Subject, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// NewConfigurationError builds a ConfigurationError
func NewConfigurationError(subject, field, reason string) *ConfigurationError {
	return &ConfigurationError{Subject: subject, Field: field, Reason: reason}
}

// ProvisioningEmptyError reports which list came out empty
type ProvisioningEmptyError struct {
	ScenarioID int
	Resource   string // "datacenters", "vms" or "workload"
}

func (e *ProvisioningEmptyError) Error() string {
	return fmt.Sprintf("scenario %d: no %s provisioned", e.ScenarioID, e.Resource)
}

func (e *ProvisioningEmptyError) Unwrap() error { return ErrProvisioningEmpty }

// EngineFailureError wraps an engine error with the operation that raised it
type EngineFailureError struct {
	ScenarioID int
	Operation  string
	Err        error
}

func (e *EngineFailureError) Error() string {
	return fmt.Sprintf("scenario %d: engine %s failed: %v", e.ScenarioID, e.Operation, e.Err)
}

// Unwrap exposes both the sentinel and the underlying engine error
func (e *EngineFailureError) Unwrap() []error { return []error{ErrEngineFailure, e.Err} }
