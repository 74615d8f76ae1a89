package errors

import (
	e "errors"
	"fmt"
)

// ErrorCode identifies one class of failure in the heartbeat monitor.
type ErrorCode int

const (
	ErrorCodePrefix = "heartbeat"

	// ErrorConfig is raised at startup for a missing or malformed roster or SMTP setting. Fatal.
	ErrorConfig ErrorCode = 1
	// ErrorParse is raised for a datagram that does not carry a canonical server identifier.
	ErrorParse ErrorCode = 2
	// ErrorUnknownSender is raised for a well-formed identifier that is not in the roster.
	ErrorUnknownSender ErrorCode = 3
	// ErrorSocket is raised when the heartbeat socket cannot be bound or read. Fatal.
	ErrorSocket ErrorCode = 4
	// ErrorNotification is raised when a down/up notification cannot be delivered.
	ErrorNotification ErrorCode = 5
)

var codeReasons = map[ErrorCode]string{
	ErrorConfig:        "Invalid configuration",
	ErrorParse:         "Malformed heartbeat",
	ErrorUnknownSender: "Unknown heartbeat sender",
	ErrorSocket:        "Heartbeat socket failure",
	ErrorNotification:  "Notification failure",
}

// HeartbeatError carries an ErrorCode, a formatted reason and an optional cause.
type HeartbeatError struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func New(code ErrorCode, reason string, values ...interface{}) *HeartbeatError {
	if len(values) > 0 {
		reason = fmt.Sprintf(reason, values...)
	}
	return &HeartbeatError{Code: code, Reason: reason}
}

// Wrap returns a HeartbeatError with err as its cause.
func Wrap(code ErrorCode, err error, reason string, values ...interface{}) *HeartbeatError {
	herr := New(code, reason, values...)
	herr.Err = err
	return herr
}

func CodeStr(code ErrorCode) string {
	return fmt.Sprintf("%s-%d", ErrorCodePrefix, code)
}

func (e *HeartbeatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", CodeStr(e.Code), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", CodeStr(e.Code), e.Reason)
}

func (e *HeartbeatError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the error must stop the process.
func (e *HeartbeatError) Fatal() bool {
	return e.Code == ErrorConfig || e.Code == ErrorSocket
}

func (e *HeartbeatError) Title() string {
	return codeReasons[e.Code]
}

func ConfigError(reason string, values ...interface{}) *HeartbeatError {
	return New(ErrorConfig, reason, values...)
}

func ParseError(reason string, values ...interface{}) *HeartbeatError {
	return New(ErrorParse, reason, values...)
}

func UnknownSender(reason string, values ...interface{}) *HeartbeatError {
	return New(ErrorUnknownSender, reason, values...)
}

func SocketError(err error, reason string, values ...interface{}) *HeartbeatError {
	return Wrap(ErrorSocket, err, reason, values...)
}

func NotificationError(err error, reason string, values ...interface{}) *HeartbeatError {
	return Wrap(ErrorNotification, err, reason, values...)
}

func IsConfigError(err error) bool {
	return hasCode(err, ErrorConfig)
}

func IsParseError(err error) bool {
	return hasCode(err, ErrorParse)
}

func IsUnknownSender(err error) bool {
	return hasCode(err, ErrorUnknownSender)
}

func IsSocketError(err error) bool {
	return hasCode(err, ErrorSocket)
}

func IsNotificationError(err error) bool {
	return hasCode(err, ErrorNotification)
}

func hasCode(err error, code ErrorCode) bool {
	var herr *HeartbeatError
	if e.As(err, &herr) {
		return herr.Code == code
	}
	return false
}
