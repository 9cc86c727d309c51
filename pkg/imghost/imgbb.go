package imghost

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pompa-press/pkg/config"
	"pompa-press/pkg/logger"
)

// ImgBBHost uploads images to the ImgBB API. ImgBB has no delete endpoint,
// so Delete is a documented no-op: replaced assets stay live remotely.
type ImgBBHost struct {
	endpoint   string
	apiKey     string
	maxRetries int
	client     *http.Client
	logger     *logger.Logger

	// backoffBase is the first 429 back-off; doubled per attempt. Overridable
	// in tests.
	backoffBase time.Duration
}

type imgbbResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewImgBBHost(cfg *config.Config, log *logger.Logger) *ImgBBHost {
	return &ImgBBHost{
		endpoint:    cfg.ImgBBEndpoint,
		apiKey:      cfg.ImgBBAPIKey,
		maxRetries:  cfg.UploadMaxRetries,
		client:      &http.Client{Timeout: cfg.UploadTimeout},
		logger:      log,
		backoffBase: 2 * time.Second,
	}
}

func (h *ImgBBHost) Upload(ctx context.Context, data []byte, name string) (string, error) {
	form := url.Values{}
	form.Set("key", h.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(data))
	if name != "" {
		form.Set("name", name)
	}
	body := form.Encode()

	backoff := h.backoffBase
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("failed to build upload request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := h.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("upload request failed: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if attempt >= h.maxRetries {
				return "", fmt.Errorf("%w after %d attempts", ErrRateLimited, attempt)
			}
			h.logger.Warn("Image host rate limited, retrying in %s (attempt %d/%d)", backoff, attempt, h.maxRetries)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			backoff *= 2
			continue
		}

		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return "", fmt.Errorf("failed to read upload response: %w", readErr)
		}

		if resp.StatusCode != http.StatusOK {
			return "", &UploadError{StatusCode: resp.StatusCode, Body: string(raw)}
		}

		var parsed imgbbResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", &UploadError{StatusCode: resp.StatusCode, Body: string(raw)}
		}
		if !parsed.Success || parsed.Data.URL == "" {
			return "", &UploadError{StatusCode: resp.StatusCode, Body: string(raw)}
		}

		return parsed.Data.URL, nil
	}
}

// Delete always succeeds without touching the remote asset; ImgBB exposes no
// delete API. Operators should expect replaced images to remain hosted.
func (h *ImgBBHost) Delete(ctx context.Context, assetURL string) (bool, error) {
	h.logger.Warn("ImgBB does not support deletion via API, leaving asset live: %s", assetURL)
	return true, nil
}
