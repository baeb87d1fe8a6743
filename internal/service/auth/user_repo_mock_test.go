package auth

import (
	"context"
	"sync"

	"github.com/yadascribe/scribe-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByCodeFunc   func(ctx context.Context, code string) (*domain.User, error)
	CreateFunc      func(ctx context.Context, u domain.User) (*domain.User, error)
	SetPasswordFunc func(ctx context.Context, key int64, hash string) error

	calls struct {
		GetByCode []struct {
			Ctx  context.Context
			Code string
		}
		Create []struct {
			Ctx context.Context
			U   domain.User
		}
		SetPassword []struct {
			Ctx  context.Context
			Key  int64
			Hash string
		}
	}
	lockGetByCode   sync.RWMutex
	lockCreate      sync.RWMutex
	lockSetPassword sync.RWMutex
}

func (mock *userRepoMock) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	if mock.GetByCodeFunc == nil {
		panic("userRepoMock.GetByCodeFunc: method is nil but userRepo.GetByCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{Ctx: ctx, Code: code}
	mock.lockGetByCode.Lock()
	mock.calls.GetByCode = append(mock.calls.GetByCode, callInfo)
	mock.lockGetByCode.Unlock()
	return mock.GetByCodeFunc(ctx, code)
}

func (mock *userRepoMock) GetByCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	mock.lockGetByCode.RLock()
	calls := mock.calls.GetByCode
	mock.lockGetByCode.RUnlock()
	return calls
}

func (mock *userRepoMock) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   domain.User
	}{Ctx: ctx, U: u}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct {
	Ctx context.Context
	U   domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *userRepoMock) SetPassword(ctx context.Context, key int64, hash string) error {
	if mock.SetPasswordFunc == nil {
		panic("userRepoMock.SetPasswordFunc: method is nil but userRepo.SetPassword was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Key  int64
		Hash string
	}{Ctx: ctx, Key: key, Hash: hash}
	mock.lockSetPassword.Lock()
	mock.calls.SetPassword = append(mock.calls.SetPassword, callInfo)
	mock.lockSetPassword.Unlock()
	return mock.SetPasswordFunc(ctx, key, hash)
}

func (mock *userRepoMock) SetPasswordCalls() []struct {
	Ctx  context.Context
	Key  int64
	Hash string
} {
	mock.lockSetPassword.RLock()
	calls := mock.calls.SetPassword
	mock.lockSetPassword.RUnlock()
	return calls
}
