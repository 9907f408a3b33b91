package kafka

import (
	"errors"
	"strings"
)

var (
	ErrInvalidConfig        = errors.New("invalid config")
	ErrConnectionFailed     = errors.New("connection failed")
	ErrConnectionLost       = errors.New("connection lost")
	ErrBrokerNotAvailable   = errors.New("broker not available")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAuthorizationFailed  = errors.New("authorization failed")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrGroupCoordinator     = errors.New("group coordinator not available")
	ErrRebalanceInProgress  = errors.New("rebalance in progress")
	ErrOffsetOutOfRange     = errors.New("offset out of range")
	ErrRequestTimedOut      = errors.New("request timed out")
	ErrNetworkError         = errors.New("network error")

	// ErrFeedDisabled is returned by Run on a feed built from a disabled
	// config.
	ErrFeedDisabled = errors.New("kafka feed disabled")
)

// TranslateError maps a kafka-go or network error onto the package's
// sentinel errors by message. Unknown errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"):
		return ErrConnectionFailed
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "connection closed"):
		return ErrConnectionLost
	case strings.Contains(msg, "broker not available"):
		return ErrBrokerNotAvailable
	case strings.Contains(msg, "sasl"), strings.Contains(msg, "authentication failed"):
		return ErrAuthenticationFailed
	case strings.Contains(msg, "authorization failed"):
		return ErrAuthorizationFailed
	case strings.Contains(msg, "unknown topic"), strings.Contains(msg, "topic not found"):
		return ErrTopicNotFound
	case strings.Contains(msg, "group coordinator not available"), strings.Contains(msg, "not coordinator for group"):
		return ErrGroupCoordinator
	case strings.Contains(msg, "rebalance in progress"):
		return ErrRebalanceInProgress
	case strings.Contains(msg, "offset out of range"):
		return ErrOffsetOutOfRange
	case strings.Contains(msg, "timed out"), strings.Contains(msg, "timeout"):
		return ErrRequestTimedOut
	case strings.Contains(msg, "network"), strings.Contains(msg, "dial"):
		return ErrNetworkError
	default:
		return err
	}
}

// IsPermanentError reports whether err will not go away by fetching again.
// Run stops on permanent errors.
func IsPermanentError(err error) bool {
	switch {
	case errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrAuthorizationFailed),
		errors.Is(err, ErrTopicNotFound),
		errors.Is(err, ErrInvalidConfig):
		return true
	default:
		return false
	}
}
