package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed call.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindTimeout
	KindServer
	KindDecode
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind;
// ErrUnauthorized additionally matches 401 and 403 responses.
var (
	ErrNetwork      = errors.New("backend unreachable")
	ErrTimeout      = errors.New("request timeout")
	ErrServer       = errors.New("backend error")
	ErrDecode       = errors.New("malformed response")
	ErrCanceled     = errors.New("request canceled")
	ErrUnauthorized = errors.New("unauthorized")
)

const timeoutMessage = "Request timeout. The backend may be waking up. Please try again in a moment."

// Error is the failure of a single gateway call. Message is ready to be
// shown to a user as is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrServer:
		return e.Kind == KindServer
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrCanceled:
		return e.Kind == KindCanceled
	case ErrUnauthorized:
		return e.Kind == KindServer && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	}
	return false
}

// KindOf returns the Kind of err, or 0 when err is not a gateway error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return 0
}

// errorPayload is the error envelope the backend uses. detail is either a
// string or, for validation failures, a list of {loc, msg} objects.
type errorPayload struct {
	Error  string          `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// serverMessage picks the most useful message out of an error response.
func serverMessage(status int, body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil {
		if p.Error != "" {
			return p.Error
		}
		if msg := detailMessage(p.Detail); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []validationItem
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
