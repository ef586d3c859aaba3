// Package identity resolves user ids to email addresses through the external
// identity provider's admin API.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/vitalsync/vitalsync-api/internal/config"
)

// Directory looks up contact addresses for platform users.
type Directory interface {
	EmailForUser(ctx context.Context, userID string) (string, error)
}

// AdminClient queries the identity provider's privileged user endpoint
// (GET /admin/users/{id}) with the service key.
type AdminClient struct {
	client     *resty.Client
	serviceKey string
}

func NewAdminClient(cfg config.IdentityConfig) *AdminClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(10 * time.Second)

	return &AdminClient{
		client:     client,
		serviceKey: cfg.ServiceKey,
	}
}

// Configured reports whether the admin API can be reached at all. Without a
// base URL or service key, recipient resolution degrades to an empty set.
func (c *AdminClient) Configured() bool {
	return c.client.BaseURL != "" && c.serviceKey != ""
}

func (c *AdminClient) EmailForUser(ctx context.Context, userID string) (string, error) {
	if !c.Configured() {
		return "", errors.New("identity admin api is not configured")
	}

	var user struct {
		Email string `json:"email"`
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.serviceKey).
		SetHeader("apikey", c.serviceKey).
		SetResult(&user).
		Get(fmt.Sprintf("/admin/users/%s", userID))
	if err != nil {
		return "", errors.Wrap(err, "identity admin request failed")
	}
	if resp.IsError() {
		return "", fmt.Errorf("identity admin api returned %d for user %s", resp.StatusCode(), userID)
	}
	if user.Email == "" {
		return "", fmt.Errorf("user %s has no email on file", userID)
	}
	return user.Email, nil
}
