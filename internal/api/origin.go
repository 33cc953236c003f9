// Package api talks to the remote image origin. It is the only component
// that performs network I/O.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otogram/internal/config"
	"otogram/internal/constants"
	"otogram/internal/domain"

	"github.com/valyala/fasthttp"
)

// FetchError categorizes an origin failure. Permanent failures (the asset
// does not exist) must not be retried; everything else is transient.
type FetchError struct {
	ID         domain.AssetID
	StatusCode int
	Permanent  bool
	Err        error
}

func (e *FetchError) Error() string {
	class := "transient"
	if e.Permanent {
		class = "permanent"
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s failure: %v", e.ID, class, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s failure: status %d", e.ID, class, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsPermanent reports whether err is a permanent fetch failure.
func IsPermanent(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Permanent
	}
	return false
}

type OriginClient struct {
	coverBase string
	imageBase string
	client    *fasthttp.Client
}

func NewOriginClient(cfg *config.Config) *OriginClient {
	return &OriginClient{
		coverBase: cfg.CoverBaseURL,
		imageBase: cfg.ImageBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.FetchAttemptTimeout,
			WriteTimeout:        constants.FetchAttemptTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// URLFor returns the templated origin URL for an asset id.
func (c *OriginClient) URLFor(id domain.AssetID) string {
	switch id.Category {
	case domain.CategoryCover:
		if id.Key == domain.FallbackCoverKey {
			return fmt.Sprintf("%s/musicjacket_fallback.webp", c.imageBase)
		}
		return fmt.Sprintf("%s/%s.webp-thumbnail", c.coverBase, id.Key)
	case domain.CategoryDiff:
		return fmt.Sprintf("%s/diff_%s.png", c.imageBase, id.Key)
	case domain.CategoryRank:
		return fmt.Sprintf("%s/rank_%s.png", c.imageBase, id.Key)
	default:
		return fmt.Sprintf("%s/%s", c.imageBase, id.Key)
	}
}

// Fetch performs a single GET for the asset and returns its raw bytes.
// The returned error, if any, is a *FetchError.
func (c *OriginClient) Fetch(ctx context.Context, id domain.AssetID) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.URLFor(id))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetReferer("https://u.otogame.net/")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.FetchAttemptTimeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, &FetchError{ID: id, Err: err}
	}

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusOK:
		// resp owns its body buffer; copy before release.
		body := make([]byte, len(resp.Body()))
		copy(body, resp.Body())
		return body, nil
	case status == fasthttp.StatusNotFound || status == fasthttp.StatusGone:
		return nil, &FetchError{ID: id, StatusCode: status, Permanent: true}
	default:
		return nil, &FetchError{ID: id, StatusCode: status}
	}
}
