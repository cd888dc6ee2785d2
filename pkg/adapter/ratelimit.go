package adapter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

var (
	ErrRateLimited = goerr.New("rate limited by provider")
)

// IsRateLimited reports whether err means the provider throttled the call
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}

	// errors that lost their type on the way still carry the status code
	return strings.Contains(err.Error(), "429")
}
