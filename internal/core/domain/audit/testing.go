package audit

import (
	"context"
	"fmt"
	"sync"
)

type FakeLog struct {
	Appended    []Record
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeLog() *FakeLog {
	return &FakeLog{}
}

func (l *FakeLog) Append(ctx context.Context, record Record) error {
	if l.ReturnError {
		return fmt.Errorf("could not append audit record %v", record)
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	l.Appended = append(l.Appended, record)
	return nil
}

func (l *FakeLog) AppendedCount() int {
	return len(l.Appended)
}

func (l *FakeLog) LastAppended() Record {
	n := len(l.Appended)
	if n == 0 {
		panic("Appended count is 0.")
	}
	return l.Appended[n-1]
}
