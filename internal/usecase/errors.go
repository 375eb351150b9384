package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403 権限
	ErrForbidden = errors.New("forbidden")
	//401 再利用されてしまっている
	ErrSecurityIncident = errors.New("security incident")
	//409 競合
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// ユーザー向けの固定メッセージ
const (
	MsgFillRequired      = "Please fill all required fields"
	MsgPlaceOrderFailed  = "Failed to place order"
	MsgPetUnprocessable  = "Unable to process pet information. Please contact support."
	MsgInvalidCoupon     = "Invalid coupon code"
	MsgOnlinePaymentsOff = "online payment is not available yet"
	MsgDBError           = "db error"
)

// handlerがそのままステータスとメッセージに使うエラー
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 認証まわりのセンチネルエラーもHTTPErrorに寄せる
func ToHTTPError(err error) *HTTPError {
	if he, ok := AsHTTPError(err); ok {
		return he
	}
	switch {
	case errors.Is(err, ErrValidation):
		return &HTTPError{Status: http.StatusBadRequest, Message: "validation error"}
	case errors.Is(err, ErrUnauthorized):
		return &HTTPError{Status: http.StatusUnauthorized, Message: "unauthorized"}
	case errors.Is(err, ErrSecurityIncident):
		return &HTTPError{Status: http.StatusUnauthorized, Message: "security incident"}
	case errors.Is(err, ErrForbidden):
		return &HTTPError{Status: http.StatusForbidden, Message: "forbidden"}
	case errors.Is(err, ErrConflict):
		return &HTTPError{Status: http.StatusConflict, Message: "conflict"}
	default:
		return &HTTPError{Status: http.StatusInternalServerError, Message: "internal error"}
	}
}

func badRequest(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }

func dbError() error { return NewHTTPError(http.StatusInternalServerError, MsgDBError) }

func notFound() error { return NewHTTPError(http.StatusNotFound, "not found") }
