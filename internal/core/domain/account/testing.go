package account

import (
	"context"
	"fmt"
	"passreset/internal/core/domain/common"
	"sync"
)

type FakePasswordChange struct {
	Email    common.Email
	Password RawPassword
}

type FakeProvider struct {
	Changed      []FakePasswordChange
	RejectStatus int
	ReturnError  bool
	lock         sync.Mutex
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{}
}

func (p *FakeProvider) SetPassword(ctx context.Context, email common.Email, password RawPassword) error {
	if p.ReturnError {
		return fmt.Errorf("could not set password for %s", email)
	}
	if p.RejectStatus != 0 {
		return &RejectedError{StatusCode: p.RejectStatus}
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Changed = append(p.Changed, FakePasswordChange{Email: email, Password: password})
	return nil
}

func (p *FakeProvider) ChangedCount() int {
	return len(p.Changed)
}

func (p *FakeProvider) LastChanged() FakePasswordChange {
	n := len(p.Changed)
	if n == 0 {
		panic("Changed count is 0.")
	}
	return p.Changed[n-1]
}
