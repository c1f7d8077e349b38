package validatetoken

import (
	"context"
	"passreset/internal/core/domain/audit"
	"passreset/internal/core/domain/common"
	"passreset/internal/core/domain/logging"
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
	auditLog  *audit.FakeLog
}

func setupSuite() *suite {
	return &suite{
		log:       logging.NewFakeLogger(),
		tokenRepo: token.NewFakeRepository(),
		auditLog:  audit.NewFakeLog(),
	}
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.tokenRepo, s.auditLog, func() time.Time { return NOW })
}

func TestValidTokenFound(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.tokenRepo.Tokens = []token.ResetToken{
		{Email: EMAIL, Token: TOKEN, ExpiresAt: NOW.Add(time.Minute)},
	}
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: TOKEN, RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Equal(t, common.Email(EMAIL), result.Email)
	require.Equal(t, 0, suite.auditLog.AppendedCount())
}

func TestValidationDoesNotConsumeToken(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	suite.tokenRepo.Tokens = []token.ResetToken{
		{Email: EMAIL, Token: TOKEN, ExpiresAt: NOW.Add(time.Minute)},
	}
	service := suite.createService()

	// Exercise ---
	for i := 0; i < 3; i++ {
		result, err := service.Run(context.Background(), Input{Token: TOKEN, RemoteAddr: REMOTE_ADDR})
		require.NoError(t, err)
		require.True(t, result.Valid)
	}

	// Verify ---
	stored, err := suite.tokenRepo.GetByToken(context.Background(), TOKEN)
	require.NoError(t, err)
	require.Equal(t, common.Email(EMAIL), stored.Email)
}

func TestUnknownTokenInvalid(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	service := suite.createService()

	// Exercise ---
	result, err := service.Run(context.Background(), Input{Token: "unknown-token", RemoteAddr: REMOTE_ADDR})

	// Verify ---
	require.NoError(t, err)
	require.False(t, result.Valid)

	require.Equal(t, 1, suite.auditLog.AppendedCount())
	record := suite.auditLog.LastAppended()
	require.Equal(t, audit.KindValidate, record.Kind)
	require.Equal(t, REMOTE_ADDR, record.RemoteAddr)
	require.Equal(t, common.Email(""), record.Email)
	require.Equal(t, "invalid token", record.Message)
}

func TestExpiredTokenInvalid(t *testing.T) {
	cases := []struct {
		id        string
		expiresAt time.Time
	}{
		{id: "long expired", expiresAt: NOW.Add(-time.Hour)},
		{id: "just expired", expiresAt: NOW},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			suite := setupSuite()
			suite.tokenRepo.Tokens = []token.ResetToken{
				{Email: EMAIL, Token: TOKEN, ExpiresAt: testcase.expiresAt},
			}
			service := suite.createService()

			// Exercise ---
			result, err := service.Run(context.Background(), Input{Token: TOKEN, RemoteAddr: REMOTE_ADDR})

			// Verify ---
			require.NoError(t, err)
			require.False(t, result.Valid)
			record := suite.auditLog.LastAppended()
			require.Equal(t, audit.KindValidate, record.Kind)
			require.Equal(t, "invalid token", record.Message)
		})
	}
}
