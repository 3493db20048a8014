package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Uploader posts signed image uploads to the Cloudinary API.
type Uploader struct {
	cfg    Config
	client *http.Client
}

// NewUploader creates an Uploader with the given config and HTTP client.
func NewUploader(cfg Config, client *http.Client) *Uploader {
	return &Uploader{cfg: cfg, client: client}
}

// uploadResponse is the subset of the Cloudinary response the app uses.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// sign computes the Cloudinary request signature: the SHA-1 of the
// alphabetically sorted parameters with the API secret appended.
func (u *Uploader) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + u.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

// UploadImage uploads an image and returns its HTTPS delivery URL. The
// upload overwrites any previous asset with the same public id.
func (u *Uploader) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	params := map[string]string{
		"folder":    folder,
		"overwrite": "true",
		"public_id": publicID,
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return "", err
		}
	}
	if err := mw.WriteField("api_key", u.cfg.APIKey); err != nil {
		return "", err
	}
	if err := mw.WriteField("signature", u.sign(params)); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", "file")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", u.cfg.BaseURL, u.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	var body uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if res.StatusCode >= 400 {
		if body.Error.Message != "" {
			return "", fmt.Errorf("cloudinary: %s", body.Error.Message)
		}
		return "", fmt.Errorf("cloudinary http %d", res.StatusCode)
	}
	if body.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: response missing secure_url")
	}
	return body.SecureURL, nil
}
