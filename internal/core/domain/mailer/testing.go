package mailer

import (
	"context"
	"fmt"
	"passreset/internal/core/domain/common"
	"sync"
)

type FakeSentLink struct {
	Email common.Email
	Link  string
}

type FakeResetLinkSender struct {
	Sent        []FakeSentLink
	Reject      bool
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetLinkSender() *FakeResetLinkSender {
	return &FakeResetLinkSender{}
}

func (s *FakeResetLinkSender) SendResetLink(
	ctx context.Context,
	email common.Email,
	link string,
) (bool, error) {
	if s.ReturnError {
		return false, fmt.Errorf("could not send reset link to %s", email)
	}
	if s.Reject {
		return false, nil
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, FakeSentLink{Email: email, Link: link})
	return true, nil
}

func (s *FakeResetLinkSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakeResetLinkSender) LastSent() FakeSentLink {
	n := len(s.Sent)
	if n == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[n-1]
}
