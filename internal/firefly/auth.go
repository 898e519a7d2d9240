package firefly

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const minCredentialLength = 8

var placeholderCredentials = []string{
	"your_client_id",
	"your_client_secret",
	"changeme",
}

// CheckCredentials reports ErrConfig when the configured credentials are
// missing or still look like template values. It makes no network call.
func (c *Client) CheckCredentials() error {
	if err := checkCredential("client id", c.clientID); err != nil {
		return err
	}
	return checkCredential("client secret", c.clientSecret)
}

func checkCredential(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is empty", ErrConfig, name)
	}
	if len(value) < minCredentialLength {
		return fmt.Errorf("%w: %s is shorter than %d characters", ErrConfig, name, minCredentialLength)
	}
	if isPlaceholder(value) {
		return fmt.Errorf("%w: %s looks like a placeholder", ErrConfig, name)
	}
	return nil
}

func isPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, p := range placeholderCredentials {
		if v == p {
			return true
		}
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	return strings.Trim(v, "x") == ""
}

// Authenticate exchanges the client credentials for an access token.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	if err := c.CheckCredentials(); err != nil {
		return "", err
	}

	cfg := clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL,
		Scopes:       []string{c.scope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := cfg.Token(ctx)
	if err != nil {
		return "", authError(err)
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", &Error{Op: OpAuthenticate, Kind: KindUnexpected, Detail: "token response has no access_token"}
	}

	c.logger.Info("authenticated with firefly services", "expires", tok.Expiry)
	return tok.AccessToken, nil
}

func authError(err error) *Error {
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		e := statusError(OpAuthenticate, rErr.Response.StatusCode, string(rErr.Body))
		if e.Kind == KindUnexpected && rErr.Response.StatusCode < 400 {
			e.Detail = "malformed token response"
		}
		return e
	}
	var uErr *url.Error
	if errors.As(err, &uErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return transportError(OpAuthenticate, err)
	}
	// The request went through, so the 2xx body could not be turned into a token.
	return &Error{Op: OpAuthenticate, Kind: KindUnexpected, Detail: "malformed token response", Err: err}
}
