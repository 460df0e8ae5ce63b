package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/example/lifescan/internal/scan"
)

const (
	analyzePath    = "/vision/v3.2/analyze"
	visualFeatures = "Description,Tags,Faces,Objects,Color"
	requestTimeout = 20 * time.Second
)

// AzureClient calls the Azure Computer Vision analyze endpoint. One shot
// per request, bounded timeout, no retry; any failure surfaces as a
// pipeline error rather than a silent fallback.
type AzureClient struct {
	endpoint string
	key      string
	httpc    *http.Client
}

func NewAzureClient(endpoint, key string) *AzureClient {
	return &AzureClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *AzureClient) Extract(ctx context.Context, data []byte) (scan.FeatureSet, error) {
	u := c.endpoint + analyzePath + "?visualFeatures=" + url.QueryEscape(visualFeatures)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scan.ErrExtraction, err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", mimetype.Detect(data).String())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scan.ErrExtraction, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", scan.ErrExtraction, resp.StatusCode, string(body))
	}

	var features scan.FeatureSet
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", scan.ErrExtraction, err)
	}
	return features, nil
}
