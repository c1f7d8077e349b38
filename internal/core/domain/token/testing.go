package token

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type FakeRepository struct {
	Tokens      []ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Tokens: make([]ResetToken, 0, 10)}
}

func (r *FakeRepository) Upsert(ctx context.Context, input UpsertInput) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not upsert reset token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	t = ResetToken{Email: input.Email, Token: input.Token, ExpiresAt: input.ExpiresAt}
	for ix, existing := range r.Tokens {
		if existing.Email == input.Email {
			r.Tokens[ix] = t
			return t, nil
		}
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeRepository) GetByToken(ctx context.Context, tok Token) (t ResetToken, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get reset token %v", tok)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Tokens {
		if existing.Token == tok {
			return existing, nil
		}
	}
	return t, ErrTokenDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, tok Token) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete reset token %v", tok)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, existing := range r.Tokens {
		if existing.Token != tok {
			kept = append(kept, existing)
		}
	}
	r.Tokens = kept
	return nil
}

func (r *FakeRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if r.ReturnError {
		return fmt.Errorf("could not delete expired reset tokens")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	kept := r.Tokens[:0]
	for _, existing := range r.Tokens {
		if !existing.IsExpired(now) {
			kept = append(kept, existing)
		}
	}
	r.Tokens = kept
	return nil
}

type FakeGenerator struct {
	Token Token
}

func NewFakeGenerator(t string) *FakeGenerator {
	return &FakeGenerator{Token: Token(t)}
}

func (g *FakeGenerator) GenerateResetToken() Token {
	return g.Token
}
