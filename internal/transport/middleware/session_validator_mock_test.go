package middleware

import (
	"sync"

	"github.com/yadascribe/scribe-backend/internal/auth"
)

var _ sessionValidator = &sessionValidatorMock{}

type sessionValidatorMock struct {
	StatusFunc func(token string) (auth.Session, bool)

	calls struct {
		Status []struct {
			Token string
		}
	}
	lockStatus sync.RWMutex
}

func (mock *sessionValidatorMock) Status(token string) (auth.Session, bool) {
	if mock.StatusFunc == nil {
		panic("sessionValidatorMock.StatusFunc: method is nil but sessionValidator.Status was just called")
	}
	callInfo := struct{ Token string }{Token: token}
	mock.lockStatus.Lock()
	mock.calls.Status = append(mock.calls.Status, callInfo)
	mock.lockStatus.Unlock()
	return mock.StatusFunc(token)
}

func (mock *sessionValidatorMock) StatusCalls() []struct{ Token string } {
	mock.lockStatus.RLock()
	calls := mock.calls.Status
	mock.lockStatus.RUnlock()
	return calls
}
