package worksync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/worksync/session-agent/internal/core/domain"
	"github.com/worksync/session-agent/internal/core/ports"
)

const imageField = "profileImage"

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.UserProfile, error) {
	var user domain.UserProfile
	if err := c.call(ctx, http.MethodPost, "/api/auth/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadProfileImage posts img as multipart field "profileImage".
func (c *Client) UploadProfileImage(ctx context.Context, userID string, img ports.ImageUpload) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageField, escapeQuotes(img.Filename)))
	header.Set("Content-Type", img.ContentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/admin/users/"+url.PathEscape(userID)+"/upload-image", token, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.observe(ctx, token, c.send(req, nil))
}

func (c *Client) DeleteAllUsers(ctx context.Context) (string, error) {
	return c.deleteAll(ctx, "/api/admin/users")
}

func (c *Client) DeleteAllAttendance(ctx context.Context) (string, error) {
	return c.deleteAll(ctx, "/api/admin/attendance")
}

func (c *Client) DeleteAllLeaves(ctx context.Context) (string, error) {
	return c.deleteAll(ctx, "/api/admin/leaves")
}

func (c *Client) ResetSystem(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, "/api/admin/reset-system", struct{}{}, nil)
}

func (c *Client) deleteAll(ctx context.Context, path string) (string, error) {
	var res messageResponse
	if err := c.call(ctx, http.MethodDelete, path, nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
