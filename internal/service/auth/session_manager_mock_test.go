package auth

import (
	"sync"
	"time"

	"github.com/yadascribe/scribe-backend/internal/auth"
)

var _ sessionManager = &sessionManagerMock{}

type sessionManagerMock struct {
	IssueFunc    func(s auth.Session) (string, time.Time, error)
	ValidateFunc func(token string) (auth.Session, error)

	calls struct {
		Issue []struct {
			S auth.Session
		}
		Validate []struct {
			Token string
		}
	}
	lockIssue    sync.RWMutex
	lockValidate sync.RWMutex
}

func (mock *sessionManagerMock) Issue(s auth.Session) (string, time.Time, error) {
	if mock.IssueFunc == nil {
		panic("sessionManagerMock.IssueFunc: method is nil but sessionManager.Issue was just called")
	}
	callInfo := struct{ S auth.Session }{S: s}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(s)
}

func (mock *sessionManagerMock) IssueCalls() []struct{ S auth.Session } {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

func (mock *sessionManagerMock) Validate(token string) (auth.Session, error) {
	if mock.ValidateFunc == nil {
		panic("sessionManagerMock.ValidateFunc: method is nil but sessionManager.Validate was just called")
	}
	callInfo := struct{ Token string }{Token: token}
	mock.lockValidate.Lock()
	mock.calls.Validate = append(mock.calls.Validate, callInfo)
	mock.lockValidate.Unlock()
	return mock.ValidateFunc(token)
}

func (mock *sessionManagerMock) ValidateCalls() []struct{ Token string } {
	mock.lockValidate.RLock()
	calls := mock.calls.Validate
	mock.lockValidate.RUnlock()
	return calls
}
