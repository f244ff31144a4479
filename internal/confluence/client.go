package confluence

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dt-pm-tools/confluence-md/internal/config"
)

// Client is a Confluence REST API client (v1 content API, storage format).
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a new Confluence client from the given config.
func NewClient(cfg config.Config) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Username + ":" + cfg.Token))
	baseURL := strings.TrimRight(cfg.URL, "/")
	return &Client{
		baseURL:    baseURL,
		authHeader: "Basic " + creds,
		httpClient: &http.Client{},
	}
}

// GetPageByTitle looks up a page by exact title within a space.
// Returns (nil, nil) when no page with that title exists.
func (c *Client) GetPageByTitle(spaceKey, title string) (*Page, error) {
	q := url.Values{}
	q.Set("spaceKey", spaceKey)
	q.Set("title", title)
	q.Set("expand", "version,body.storage")
	reqURL := fmt.Sprintf("%s/rest/api/content?%s", c.baseURL, q.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	var list ContentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(list.Results) == 0 {
		return nil, nil
	}
	return &list.Results[0], nil
}

// SearchTitles runs a CQL title search within a space and returns the
// matching page titles.
func (c *Client) SearchTitles(spaceKey, titleQuery string, limit int) ([]string, error) {
	cql := fmt.Sprintf(`space = "%s" AND title ~ "%s"`, spaceKey, titleQuery)
	q := url.Values{}
	q.Set("cql", cql)
	q.Set("limit", fmt.Sprintf("%d", limit))
	reqURL := fmt.Sprintf("%s/rest/api/content/search?%s", c.baseURL, q.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	var list ContentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	titles := make([]string, 0, len(list.Results))
	for _, p := range list.Results {
		titles = append(titles, p.Title)
	}
	return titles, nil
}

// GetTemplates fetches the content templates visible in a space,
// including their storage bodies.
func (c *Client) GetTemplates(spaceKey string) ([]Template, error) {
	q := url.Values{}
	q.Set("spaceKey", spaceKey)
	q.Set("expand", "body")
	reqURL := fmt.Sprintf("%s/rest/api/template/page?%s", c.baseURL, q.Encode())

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	var list TemplateList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return list.Results, nil
}

// CreatePage creates a new page and returns it.
func (c *Client) CreatePage(payload CreatePayload) (*Page, error) {
	reqURL := fmt.Sprintf("%s/rest/api/content", c.baseURL)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling payload: %w", err)
	}

	req, err := http.NewRequest("POST", reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &page, nil
}

// UpdatePage replaces a page's body (full replace, version bump included in
// the payload) and returns the updated page.
func (c *Client) UpdatePage(pageID string, payload UpdatePayload) (*Page, error) {
	reqURL := fmt.Sprintf("%s/rest/api/content/%s", c.baseURL, pageID)

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshalling payload: %w", err)
	}

	req, err := http.NewRequest("PUT", reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &page, nil
}

// AttachFile uploads a local file as an attachment to a page and returns
// the attachment filename.
func (c *Client) AttachFile(pageID, filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing multipart form: %w", err)
	}

	reqURL := fmt.Sprintf("%s/rest/api/content/%s/child/attachment", c.baseURL, pageID)

	req, err := http.NewRequest("POST", reqURL, &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", w.FormDataContentType())
	// Confluence rejects attachment uploads without this header.
	req.Header.Set("X-Atlassian-Token", "nocheck")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Confluence API returned %d: %s", resp.StatusCode, string(body))
	}

	return filepath.Base(filePath), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
