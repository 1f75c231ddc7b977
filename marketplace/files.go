package marketplace

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
	"github.com/stoneridge/go-marketplace-client/token"
)

// Upload is one file to send. Content is held in memory so a retried
// request can rebuild the multipart body.
type Upload struct {
	Name    string
	Content []byte
}

// FileService covers the /files endpoint group. Uploads are the one
// place the marketplace app refreshes its own access token: a 401 or
// 403 on an upload triggers a single refresh-and-retry before the
// failure is surfaced, so a multi-image upload is not lost to a token
// that expired while the form was being filled in.
type FileService struct {
	gw   *gateway.Client
	auth *AuthService
}

// UploadProductImages sends listing photos and returns their URLs.
func (s *FileService) UploadProductImages(ctx context.Context, uploads []Upload) ([]string, error) {
	var out []string
	err := s.withRefreshRetry(ctx, func() error {
		body, contentType, err := multipartBody("files", uploads)
		if err != nil {
			return err
		}
		return s.gw.Do(ctx, gateway.Request{
			Method:      http.MethodPost,
			Path:        "/files/upload/product-images",
			Reader:      body,
			ContentType: contentType,
		}, &out)
	})
	if err != nil {
		return nil, errors.Wrap(err, "[FileService.UploadProductImages]")
	}
	return out, nil
}

// UploadCategoryIcon sends a category icon and returns its URL.
func (s *FileService) UploadCategoryIcon(ctx context.Context, upload Upload) (string, error) {
	var out string
	err := s.withRefreshRetry(ctx, func() error {
		body, contentType, err := multipartBody("file", []Upload{upload})
		if err != nil {
			return err
		}
		return s.gw.Do(ctx, gateway.Request{
			Method:      http.MethodPost,
			Path:        "/files/upload/category-icon",
			Reader:      body,
			ContentType: contentType,
		}, &out)
	})
	if err != nil {
		return "", errors.Wrap(err, "[FileService.UploadCategoryIcon]")
	}
	return out, nil
}

// withRefreshRetry runs call, refreshing the access token first when
// it is already known to be expired, and retrying exactly once after a
// successful refresh when the server rejects the call with 401 or 403.
func (s *FileService) withRefreshRetry(ctx context.Context, call func() error) error {
	if access, ok := s.gw.Store().AccessToken(); !ok || token.Expired(access) {
		if _, ok := s.gw.Store().RefreshToken(); ok {
			// Best-effort: a failed refresh still lets the call run
			// and fail with the server's own verdict.
			_, _ = s.auth.Refresh(ctx)
		}
	}

	err := call()
	if err == nil {
		return nil
	}

	status := gateway.StatusOf(err)
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return err
	}
	if _, ok := s.gw.Store().RefreshToken(); !ok {
		return err
	}
	if _, refreshErr := s.auth.Refresh(ctx); refreshErr != nil {
		return err
	}
	return call()
}

// multipartBody builds a multipart form with every upload under the
// given field name.
func multipartBody(field string, uploads []Upload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, u := range uploads {
		part, err := writer.CreateFormFile(field, u.Name)
		if err != nil {
			return nil, "", errors.Wrap(err, "[multipartBody] create part")
		}
		if _, err := part.Write(u.Content); err != nil {
			return nil, "", errors.Wrap(err, "[multipartBody] write part")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "[multipartBody] close")
	}
	return body, writer.FormDataContentType(), nil
}
