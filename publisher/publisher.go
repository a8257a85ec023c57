package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultBaseURL = "https://i.instagram.com/api/v1"

// Poster uploads photo posts to the platform on behalf of one account.
type Poster struct {
	username string
	password string
	baseURL  string
	client   *http.Client

	sessionToken string
}

type loginResponse struct {
	Token   string `json:"token"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type uploadResponse struct {
	Media struct {
		ID string `json:"id"`
	} `json:"media"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewPoster creates a poster for the given account credentials.
func NewPoster(username, password string) *Poster {
	return &Poster{
		username: username,
		password: password,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Authenticate logs in and caches the session token for later uploads.
func (p *Poster) Authenticate(ctx context.Context) error {
	if p.username == "" || p.password == "" {
		return errors.New("instagram credentials not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"username": p.username,
		"password": p.password,
	})
	if err != nil {
		return fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/accounts/login/", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var login loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || login.Status != "ok" || login.Token == "" {
		return fmt.Errorf("login failed: status %d: %s", resp.StatusCode, login.Message)
	}

	p.sessionToken = login.Token
	return nil
}

// Publish uploads the image with its caption and returns the platform media
// id. Authenticate is called lazily if no session is active.
func (p *Poster) Publish(ctx context.Context, imagePath, caption string) (string, error) {
	if p.sessionToken == "" {
		if err := p.Authenticate(ctx); err != nil {
			return "", err
		}
	}

	img, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer img.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, img); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := writer.WriteField("caption", caption); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/media/upload/", &body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.sessionToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	var upload uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&upload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || upload.Status != "ok" || upload.Media.ID == "" {
		return "", fmt.Errorf("upload failed: status %d: %s", resp.StatusCode, upload.Message)
	}

	return upload.Media.ID, nil
}
