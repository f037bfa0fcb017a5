package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Vrinda2013/hireai-frontend/internal/models"
)

// Client talks to the HireAI dashboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Error is a failure reported by the HireAI API. Message carries the
// server-supplied text when the response body included one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// NewClient creates a client for the API reachable at baseURL,
// e.g. "http://localhost:8080/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// ListCandidates fetches one page of the candidate listing. Statuses are
// normalized before the page is returned.
func (c *Client) ListCandidates(ctx context.Context, page, limit int) ([]models.Candidate, models.Pagination, error) {
	endpoint := fmt.Sprintf("%s/candidates?page=%d&limit=%d", c.baseURL, page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to build list request: %w", err)
	}

	var resp models.CandidateListResponse
	if err := c.do(req, &resp); err != nil {
		return nil, models.Pagination{}, err
	}

	normalizeAll(resp.Data)
	return resp.Data, resp.Pagination, nil
}

// SearchCandidates submits an email keyword search and returns the full
// result set. Statuses are normalized before the set is returned.
func (c *Client) SearchCandidates(ctx context.Context, email string) ([]models.Candidate, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/candidates/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp models.CandidateSearchResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}

	normalizeAll(resp.Data)
	return resp.Data, nil
}

// DeleteCandidate removes one candidate record. A response with
// success=false is reported as an *Error carrying the server message.
func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	endpoint := c.baseURL + "/candidates/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}

	var resp models.DeleteResponse
	if err := c.do(req, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return &Error{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return nil
}

// FetchRoleCatalog fetches the role/skill catalog used by the interview
// question generator.
func (c *Client) FetchRoleCatalog(ctx context.Context) ([]models.Role, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/roles", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	var resp models.RoleCatalogResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GenerateQuestions submits a multipart generation request and returns the
// generated questions in server order. The optional file at r.FilePath is
// streamed as the "file" part.
func (c *Client) GenerateQuestions(ctx context.Context, r models.GenerationRequest) ([]models.GeneratedQuestion, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	skillsJSON, err := json.Marshal(r.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	fields := map[string]string{
		"role":               r.Role,
		"skills":             string(skillsJSON),
		"questionComplexity": strconv.Itoa(r.Complexity),
		"numberOfQuestions":  strconv.Itoa(r.Count),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if r.FilePath != "" {
		file, err := os.Open(r.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open attached file: %w", err)
		}
		defer file.Close()

		part, err := writer.CreateFormFile("file", filepath.Base(r.FilePath))
		if err != nil {
			return nil, fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, fmt.Errorf("failed to copy file contents: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/interview/generate", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp models.GenerateResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Questions, nil
}

// do executes the request and decodes a successful JSON body into out.
// Non-2xx responses are mapped to *Error with any server message attached.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(body),
		}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// extractMessage pulls a server-supplied message from an error body.
// The backend uses both {"error": ...} and {"message": ...} shapes.
func extractMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func normalizeAll(candidates []models.Candidate) {
	for i := range candidates {
		candidates[i].Status = models.NormalizeStatus(candidates[i].Status)
	}
}
