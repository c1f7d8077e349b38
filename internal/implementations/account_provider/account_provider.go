package accountprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"passreset/internal/core/domain/account"
	"passreset/internal/core/domain/common"
	"strings"
	"time"
)

// Client talks to the account provider's product customer API. The access
// token and product ID authorize password changes for the product's customers.
type Client struct {
	httpClient  http.Client
	baseURL     url.URL
	accessToken string
	productID   string
}

func New(baseURL url.URL, accessToken string, productID string, timeout time.Duration) *Client {
	return &Client{
		httpClient:  http.Client{Timeout: timeout},
		baseURL:     baseURL,
		accessToken: accessToken,
		productID:   productID,
	}
}

// VerifyProduct checks the access token and product ID, it is called once at
// startup so bad credentials fail fast instead of at the first confirm.
func (c *Client) VerifyProduct(ctx context.Context) error {
	u := c.baseURL.JoinPath("v1", "products", c.productID)
	q := u.Query()
	q.Set("access_token", c.accessToken)
	u.RawQuery = q.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("access token or product ID not accepted by provider: %s", string(body))
	}
	return nil
}

func (c *Client) SetPassword(ctx context.Context, email common.Email, password account.RawPassword) error {
	u := c.baseURL.JoinPath("v1", "products", c.productID, "customers", string(email))

	form := url.Values{}
	form.Set("password", string(password))
	form.Set("access_token", c.accessToken)

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPut,
		u.String(),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return err
	}
	request.Header.Add("content-type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &account.RejectedError{StatusCode: resp.StatusCode}
	}
	return nil
}
