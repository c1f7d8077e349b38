package accountprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"passreset/internal/core/domain/account"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const ACCESS_TOKEN = "test-access-token"
const PRODUCT_ID = "12345"

func createClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	return New(*baseURL, ACCESS_TOKEN, PRODUCT_ID, 5*time.Second)
}

func TestSetPasswordSuccess(t *testing.T) {
	// Setup ---
	var gotMethod, gotPath, gotPassword, gotAccessToken string
	client := createClient(t, func(rw http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotPassword = r.PostFormValue("password")
		gotAccessToken = r.PostFormValue("access_token")
		rw.WriteHeader(http.StatusOK)
	})

	// Exercise ---
	err := client.SetPassword(context.Background(), "test@test.test", "new-password")

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/v1/products/12345/customers/test@test.test", gotPath)
	require.Equal(t, "new-password", gotPassword)
	require.Equal(t, ACCESS_TOKEN, gotAccessToken)
}

func TestSetPasswordRejected(t *testing.T) {
	cases := []struct {
		id     string
		status int
	}{
		{id: "not found", status: http.StatusNotFound},
		{id: "bad request", status: http.StatusBadRequest},
		{id: "unauthorized", status: http.StatusUnauthorized},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			client := createClient(t, func(rw http.ResponseWriter, r *http.Request) {
				rw.WriteHeader(testcase.status)
			})

			// Exercise ---
			err := client.SetPassword(context.Background(), "test@test.test", "new-password")

			// Verify ---
			require.True(t, account.IsRejected(err))
			var rejected *account.RejectedError
			require.ErrorAs(t, err, &rejected)
			require.Equal(t, testcase.status, rejected.StatusCode)
		})
	}
}

func TestVerifyProductSuccess(t *testing.T) {
	// Setup ---
	var gotPath, gotAccessToken string
	client := createClient(t, func(rw http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccessToken = r.URL.Query().Get("access_token")
		rw.WriteHeader(http.StatusOK)
	})

	// Exercise ---
	err := client.VerifyProduct(context.Background())

	// Verify ---
	require.NoError(t, err)
	require.Equal(t, "/v1/products/12345", gotPath)
	require.Equal(t, ACCESS_TOKEN, gotAccessToken)
}

func TestVerifyProductInvalidCredentials(t *testing.T) {
	// Setup ---
	client := createClient(t, func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusUnauthorized)
	})

	// Exercise ---
	err := client.VerifyProduct(context.Background())

	// Verify ---
	require.Error(t, err)
}
