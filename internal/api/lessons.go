package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/PhucLe22/lms-client/internal/models"
	apperrors "github.com/PhucLe22/lms-client/pkg/errors"
)

// LessonsService wraps the lesson endpoints.
type LessonsService struct {
	client *Client
}

// LessonRequest is the create/update payload. OrderIndex must stay unique
// within the course; reordering goes through a temporary out-of-range index.
type LessonRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	OrderIndex  int    `json:"orderIndex"`
	VideoURL    string `json:"videoUrl,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
}

func (s *LessonsService) ListByCourse(ctx context.Context, courseID string) ([]models.Lesson, error) {
	var out []models.Lesson
	if err := s.client.do(ctx, "GET", fmt.Sprintf("/courses/%s/lessons", courseID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LessonsService) Create(ctx context.Context, courseID string, req LessonRequest) (*models.Lesson, error) {
	var out models.Lesson
	if err := s.client.do(ctx, "POST", fmt.Sprintf("/courses/%s/lessons", courseID), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LessonsService) Update(ctx context.Context, id string, req LessonRequest) (*models.Lesson, error) {
	var out models.Lesson
	if err := s.client.do(ctx, "PUT", fmt.Sprintf("/lessons/%s", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LessonsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", fmt.Sprintf("/lessons/%s", id), nil, nil)
}

// UploadProgress reports multipart upload progress as bytes sent out of the
// total payload size.
type UploadProgress func(sent, total int64)

// UploadDocument attaches a document file to a lesson. The progress callback
// is optional.
func (s *LessonsService) UploadDocument(ctx context.Context, lessonID, filename string, content io.Reader, progress UploadProgress) (*models.Lesson, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	total := int64(buf.Len())
	var body io.Reader = buf
	if progress != nil {
		body = &progressReader{r: buf, total: total, report: progress}
	}

	url := fmt.Sprintf("%s/lessons/%s/document", s.client.baseURL, lessonID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := s.client.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.ContentLength = total

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNetwork.Code, 0, apperrors.ErrNetwork.Message)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrNetwork.Code, 0, "read response")
	}
	if resp.StatusCode == http.StatusUnauthorized {
		s.client.tokens.Clear()
		s.client.events.Publish(Event{Kind: EventSessionExpired})
		return nil, apperrors.Clone(apperrors.ErrUnauthorized, serverMessage(data))
	}
	if resp.StatusCode >= 400 {
		return nil, apperrors.FromStatus(resp.StatusCode, serverMessage(data))
	}

	var out models.Lesson
	if err := decodeBody(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report UploadProgress
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
