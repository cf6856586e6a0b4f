package usecase

import "fmt"

type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorConfig       ErrorCode = "CONFIG_ERROR"
	ErrorUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Caller-facing messages.
const (
	MessageMissingAPIKey    = "API 키가 서버에 설정되지 않았습니다. 환경변수를 확인하세요."
	MessageInvalidFormat    = "잘못된 요청 형식입니다."
	MessageMessagesRequired = "messages 배열이 필요합니다."
	MessageUnknownUpstream  = "알 수 없는 오류"
	MessageEmptyReply       = "OpenAI 응답이 비어있어요."
	MessageInternal         = "서버 내부 오류"
)

// Error carries a machine-readable Code and Reason for logs and mapping, and the
// Message that is returned to the caller.
type Error struct {
	Code    ErrorCode
	Reason  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason, message string, err error) *Error {
	return &Error{Code: code, Reason: reason, Message: message, Err: err}
}
