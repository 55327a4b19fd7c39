package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/logger"
)

const imgbbUploadURL = "https://api.imgbb.com/1/upload"

// ImgBBService stores proof images on the ImgBB image host and returns
// the hosted URL. This is the production backend.
type ImgBBService struct {
	apiKey     string
	httpClient *http.Client
}

func NewImgBBService(apiKey string) *ImgBBService {
	return &ImgBBService{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type imgbbResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

func (s *ImgBBService) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	logger.ExternalServiceCall("imgbb", "upload", "filename", filename)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", imgbbUploadURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("imgbb", "upload", err)
		return "", &domain.DependencyError{Dependency: "proof storage", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("imgbb returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("imgbb", "upload", err)
		return "", &domain.DependencyError{Dependency: "proof storage", Err: err}
	}

	var parsed imgbbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &domain.DependencyError{Dependency: "proof storage", Err: err}
	}
	if !parsed.Success || parsed.Data.URL == "" {
		err := fmt.Errorf("imgbb upload not accepted (status %d)", parsed.Status)
		logger.ExternalServiceResult("imgbb", "upload", err)
		return "", &domain.DependencyError{Dependency: "proof storage", Err: err}
	}

	logger.ExternalServiceResult("imgbb", "upload", nil, "url", parsed.Data.URL)
	return parsed.Data.URL, nil
}
