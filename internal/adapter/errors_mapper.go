package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// providerError is the OAuth 2.0 error body (RFC 6749 section 5.2).
type providerError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// mapHTTPError converts a non-2xx provider response into a package sentinel.
// The detail is taken from the OAuth error body, then the WWW-Authenticate
// header, then the raw body.
func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	detail := providerErrorDetail(resp)

	switch {
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case status == http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, detail)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %d %s", ErrInternalServerError, status, detail)
	default:
		return fmt.Errorf("userinfo http %d: %s", status, detail)
	}
}

func providerErrorDetail(resp *resty.Response) string {
	var body providerError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		if body.Description != "" {
			return body.Error + ": " + body.Description
		}
		return body.Error
	}

	if challenge := resp.Header().Get("WWW-Authenticate"); challenge != "" {
		return challenge
	}

	if raw := strings.TrimSpace(string(resp.Body())); raw != "" {
		return raw
	}

	return http.StatusText(resp.StatusCode())
}
