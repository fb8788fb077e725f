package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// VideoUpload is the upload form.
type VideoUpload struct {
	Title       string
	Description string
	Filename    string
	Size        int64
	File        io.Reader
}

// UploadVideo submits the form and returns the created record.
func (c *Client) UploadVideo(ctx context.Context, in VideoUpload) (*Video, error) {
	if in.File == nil {
		return nil, ErrNoFile
	}
	if in.Size > MaxVideoSize {
		return nil, ErrFileTooLarge
	}

	filename := in.Filename
	if filename == "" {
		filename = "video.mp4"
	}
	body, contentType, err := buildMultipart(filename, in.File, map[string]string{
		"title":        in.Title,
		"description":  in.Description,
		"originalsize": strconv.FormatInt(in.Size, 10),
	})
	if err != nil {
		return nil, requestError(err)
	}

	resp, err := c.postMultipart(ctx, "/api/video-upload", body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp.StatusCode, payload)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &UploadError{Kind: KindMalformed, Status: resp.StatusCode, Message: malformedMessage, Err: err}
	}
	v := Normalize(raw, c.now())
	return &v, nil
}

// UploadImage sends an image for social formatting and returns its public id.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}
	body, contentType, err := buildMultipart(filename, r, nil)
	if err != nil {
		return "", requestError(err)
	}

	resp, err := c.postMultipart(ctx, "/api/image-upload", body, contentType)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", networkError(err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", classifyResponse(resp.StatusCode, payload)
	}

	var out struct {
		PublicID string `json:"publicId"`
	}
	if err := json.Unmarshal(payload, &out); err != nil || out.PublicID == "" {
		return "", &UploadError{Kind: KindMalformed, Status: resp.StatusCode, Message: malformedMessage, Err: err}
	}
	return out.PublicID, nil
}

func (c *Client) postMultipart(ctx context.Context, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), body)
	if err != nil {
		return nil, requestError(err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.doAPI(req)
	if err != nil {
		return nil, networkError(err)
	}
	return resp, nil
}

func buildMultipart(filename string, file io.Reader, fields map[string]string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	for _, name := range []string{"title", "description", "originalsize"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s field: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// classifyResponse turns an error response into an UploadError.
func classifyResponse(status int, payload []byte) *UploadError {
	if signInRequired(status) {
		return &UploadError{Kind: KindServer, Status: status, Message: signInMessage, Err: ErrSignInRequired}
	}
	trimmed := strings.TrimSpace(string(payload))
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return &UploadError{Kind: KindMalformed, Status: status, Message: malformedMessage}
	}

	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return &UploadError{Kind: KindMalformed, Status: status, Message: malformedMessage, Err: err}
	}
	if msg := errorMessage(body); msg != "" {
		return &UploadError{Kind: KindServer, Status: status, Message: msg}
	}
	return &UploadError{Kind: KindServer, Status: status, Message: trimmed}
}

// errorMessage reads {"message"}, {"error": "..."} and {"error": {"message"}}.
func errorMessage(body map[string]any) string {
	if msg, ok := body["message"].(string); ok && msg != "" {
		return msg
	}
	switch e := body["error"].(type) {
	case string:
		return e
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			return msg
		}
	}
	return ""
}
