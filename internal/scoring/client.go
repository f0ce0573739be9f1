package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	pathSkills          = "/api/skills"
	pathCertifications  = "/api/certifications"
	pathCalculate       = "/api/score/calculate"
	pathCertificateScan = "/api/score/certifications/scan"
	pathResumeScan      = "/api/score/resume"
	pathResumeText      = "/api/score/resume-text"

	uploadField     = "file"
	maxErrorBodyLen = 512
)

// Client calls the external scoring service. It never retries; callers
// decide whether to re-trigger a request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client. A nil httpClient gets a default client with
// a 60 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: httpClient,
	}
}

// Skills fetches the categorized skill catalog.
func (c *Client) Skills(ctx context.Context) (Catalog, error) {
	var out Catalog
	if err := c.getJSON(ctx, pathSkills, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Certifications fetches the tiered certification catalog.
func (c *Client) Certifications(ctx context.Context) (CertificationCatalog, error) {
	var out CertificationCatalog
	if err := c.getJSON(ctx, pathCertifications, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Calculate submits the full intake and returns the weighted report.
func (c *Client) Calculate(ctx context.Context, payload Payload) (Report, error) {
	var out Report
	if err := c.postJSON(ctx, pathCalculate, payload, &out); err != nil {
		return Report{}, err
	}
	return out, nil
}

// ScoreResumeText scores pasted resume text without a file upload.
func (c *Client) ScoreResumeText(ctx context.Context, text string) (ResumeScan, error) {
	var out ResumeScan
	body := map[string]string{"resume_text": text}
	if err := c.postJSON(ctx, pathResumeText, body, &out); err != nil {
		return ResumeScan{}, err
	}
	return out, nil
}

// ScanCertificate uploads a certificate file for identification.
func (c *Client) ScanCertificate(ctx context.Context, fileName string, data []byte) (CertificateScan, error) {
	var out CertificateScan
	if err := c.postFile(ctx, pathCertificateScan, fileName, data, &out); err != nil {
		return CertificateScan{}, err
	}
	return out, nil
}

// ScanResume uploads a resume file for ATS section scoring.
func (c *Client) ScanResume(ctx context.Context, fileName string, data []byte) (ResumeScan, error) {
	var out ResumeScan
	if err := c.postFile(ctx, pathResumeScan, fileName, data, &out); err != nil {
		return ResumeScan{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, path, out)
}

func (c *Client) postFile(ctx context.Context, path, fileName string, data []byte, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(uploadField, fileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrTransport, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if len(msg) > maxErrorBodyLen {
			msg = msg[:maxErrorBodyLen]
		}
		return &APIError{Method: req.Method, Path: path, Status: resp.StatusCode, Body: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrBadResponse, path, err)
	}
	return nil
}
