package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// OTP events
	OTPRequestedEvent      AuditEventType = "OTP_REQUESTED"
	OTPDeliveryFailedEvent AuditEventType = "OTP_DELIVERY_FAILED"

	// Authentication events
	UserRegisteredEvent   AuditEventType = "USER_REGISTERED"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Token events
	TokenRefreshedEvent     AuditEventType = "TOKEN_REFRESHED"
	TokenReuseDetectedEvent AuditEventType = "TOKEN_REUSE_DETECTED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	DeviceID  uint           `json:"device_id,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
	Timestamp time.Time      `json:"timestamp"`
}

// AuditPublisher delivers audit events to an external sink. Implementations
// must never fail the surrounding request: errors are logged and swallowed
// by the caller.
type AuditPublisher interface {
	Publish(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event failed and records the cause
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUser sets the acting user
func (e *AuditEvent) WithUser(userID uint, email string) *AuditEvent {
	e.UserID = userID
	e.Email = email
	return e
}

// WithDevice sets the originating device
func (e *AuditEvent) WithDevice(deviceID uint) *AuditEvent {
	e.DeviceID = deviceID
	return e
}

// WithClient sets client request metadata
func (e *AuditEvent) WithClient(userAgent, ip string) *AuditEvent {
	e.UserAgent = userAgent
	e.IPAddress = ip
	return e
}
