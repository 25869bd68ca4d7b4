// ABOUTME: User operations for the Beeminder API client.
// ABOUTME: Fetches the credentialed account's profile and goal slugs.
package api

import (
	"context"
	"net/http"

	"github.com/harperreed/beeminder/internal/models"
)

// GetUser returns the credentialed user's profile, including timezone and
// owned goal slugs.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, c.userPath(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
