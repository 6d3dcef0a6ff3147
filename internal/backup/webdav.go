package backup

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
)

// webdavClient speaks the minimal WebDAV subset the backup service needs:
// PUT, GET, DELETE, MKCOL for the base collection, and a Depth-1 PROPFIND
// to list backups.
type webdavClient struct {
	base     string // normalized server URL + base path, no trailing slash
	username string
	password string
	client   *http.Client
}

func newWebDAVClient(settings domain.WebDAVSettings, timeout time.Duration) *webdavClient {
	base := strings.TrimRight(settings.URL, "/")
	basePath := strings.Trim(settings.BasePath, "/")
	if basePath != "" {
		base = base + "/" + basePath
	}

	return &webdavClient{
		base:     base,
		username: settings.Username,
		password: settings.Password,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *webdavClient) do(ctx context.Context, method, target string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.SetBasicAuth(c.username, c.password)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webdav %s failed: %w", method, err)
	}
	return resp, nil
}

// probe checks that the server is reachable and the credentials work. A 404
// on the base collection is fine, it just hasn't been created yet.
func (c *webdavClient) probe(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.base, nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 || resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("webdav returned status %d", resp.StatusCode)
}

// mkcol creates the base collection. Servers answer 405 when it already
// exists; that is not an error.
func (c *webdavClient) mkcol(ctx context.Context) error {
	resp, err := c.do(ctx, "MKCOL", c.base, nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusMethodNotAllowed:
		return nil
	default:
		return fmt.Errorf("webdav MKCOL returned status %d", resp.StatusCode)
	}
}

func (c *webdavClient) put(ctx context.Context, name string, body io.Reader) error {
	resp, err := c.do(ctx, http.MethodPut, c.base+"/"+url.PathEscape(name), body, map[string]string{
		"Content-Type": "application/octet-stream",
	})
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webdav PUT returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *webdavClient) get(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, c.base+"/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("webdav GET returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *webdavClient) delete(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.base+"/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webdav DELETE returned status %d", resp.StatusCode)
	}
	return nil
}

// multistatus is the slice of a PROPFIND response we care about: the href
// of each member of the collection.
type multistatus struct {
	Responses []struct {
		Href string `xml:"href"`
	} `xml:"response"`
}

// list returns the backup file names in the base collection, sorted
// ascending. The timestamped naming scheme makes lexicographic order
// chronological order.
func (c *webdavClient) list(ctx context.Context) ([]string, error) {
	resp, err := c.do(ctx, "PROPFIND", c.base, nil, map[string]string{"Depth": "1"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("webdav PROPFIND returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read PROPFIND response: %w", err)
	}

	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil {
		return nil, fmt.Errorf("failed to parse PROPFIND response: %w", err)
	}

	var names []string
	for _, r := range ms.Responses {
		name := path.Base(strings.TrimRight(r.Href, "/"))
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		// The collection lists itself; keep only backup files.
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, nil
}
