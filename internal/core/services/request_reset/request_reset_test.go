package requestreset

import (
	"context"
	"net/url"
	"passreset/internal/core/domain/audit"
	"passreset/internal/core/domain/common"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/mailer"
	"passreset/internal/core/domain/token"
	"passreset/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const EMAIL = "test@test.test"
const TOKEN = "test-reset-token"
const REMOTE_ADDR = "192.0.2.1:12345"

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type suite struct {
	log       *logging.FakeLogger
	tokenRepo *token.FakeRepository
	generator *token.FakeGenerator
	auditLog  *audit.FakeLog
	sender    *mailer.FakeResetLinkSender
}

func setupSuite() *suite {
	return &suite{
		log:       logging.NewFakeLogger(),
		tokenRepo: token.NewFakeRepository(),
		generator: token.NewFakeGenerator(TOKEN),
		auditLog:  audit.NewFakeLog(),
		sender:    mailer.NewFakeResetLinkSender(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	baseURL := url.URL{Scheme: "https", Host: "reset.example.com"}
	return New(s.log, s.tokenRepo, s.generator, s.auditLog, s.sender, baseURL, 30*time.Minute, func() time.Time { return NOW })
}

func TestTokenIssuedAndLinkSent(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(
		context.Background(),
		Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR},
	)

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, token.Token(TOKEN), result.Token)

	stored, err := suite.tokenRepo.GetByToken(context.Background(), token.Token(TOKEN))
	require.NoError(t, err)
	require.Equal(t, common.Email(EMAIL), stored.Email)
	require.Equal(t, NOW.Add(30*time.Minute), stored.ExpiresAt)

	require.Equal(t, 1, suite.sender.SentCount())
	sent := suite.sender.LastSent()
	require.Equal(t, common.Email(EMAIL), sent.Email)
	require.Equal(t, "https://reset.example.com/validate?token=test-reset-token", sent.Link)

	require.Equal(t, 1, suite.auditLog.AppendedCount())
	record := suite.auditLog.LastAppended()
	require.Equal(t, audit.KindRequest, record.Kind)
	require.Equal(t, REMOTE_ADDR, record.RemoteAddr)
	require.Equal(t, common.Email(EMAIL), record.Email)
	require.Equal(t, "email accepted", record.Message)
	require.Equal(t, NOW, record.CreatedAt)
}

func TestNewTokenSupersedesPreviousOne(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	_, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})
	require.NoError(t, err)
	suite.generator.Token = token.Token("another-reset-token")

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, token.Token("another-reset-token"), result.Token)

	_, err = suite.tokenRepo.GetByToken(context.Background(), token.Token(TOKEN))
	require.ErrorIs(t, err, token.ErrTokenDoesNotExist)

	stored, err := suite.tokenRepo.GetByToken(context.Background(), token.Token("another-reset-token"))
	require.NoError(t, err)
	require.Equal(t, common.Email(EMAIL), stored.Email)
}

func TestExpiredTokensPurged(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()
	suite.tokenRepo.Tokens = []token.ResetToken{
		{Email: "expired@test.test", Token: "expired-token", ExpiresAt: NOW.Add(-time.Minute)},
		{Email: "live@test.test", Token: "live-token", ExpiresAt: NOW.Add(time.Minute)},
	}

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	_, err = suite.tokenRepo.GetByToken(context.Background(), token.Token("expired-token"))
	require.ErrorIs(t, err, token.ErrTokenDoesNotExist)
	_, err = suite.tokenRepo.GetByToken(context.Background(), token.Token("live-token"))
	require.NoError(t, err)
}

func TestRejectedEmailAudited(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.sender.Reject = true
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	record := suite.auditLog.LastAppended()
	require.Equal(t, audit.KindRequest, record.Kind)
	require.Equal(t, "email rejected", record.Message)
}

func TestSenderErrorPropagated(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.sender.ReturnError = true
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.Error(t, err)
	require.Equal(t, 0, suite.auditLog.AppendedCount())
}

func TestAuditFailureDoesNotFailRequest(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.auditLog.ReturnError = true
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Email: common.Email(EMAIL), RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, token.Token(TOKEN), result.Token)
	require.Equal(t, 1, suite.sender.SentCount())
}
