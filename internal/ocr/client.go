// Package ocr calls the external text-recognition service. The rest of
// the system only sees the TextExtractor interface: bytes in, one string
// of recognized text out, with no schema promises about that string.
package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TextExtractor turns image bytes into recognized text. Implementations
// may return an empty string or unrelated text; any string is valid
// pipeline input.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Client is a Vision batchAnalyze API client.
type Client struct {
	url        string
	apiKey     string
	folderID   string
	httpClient *http.Client
}

// New creates an OCR client.
func New(url, apiKey, folderID string) *Client {
	return &Client{
		url:      url,
		apiKey:   apiKey,
		folderID: folderID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Request/response shapes for the Vision text-detection call.
type analyzeRequest struct {
	FolderID     string        `json:"folderId"`
	AnalyzeSpecs []analyzeSpec `json:"analyzeSpecs"`
}

type analyzeSpec struct {
	Content  string    `json:"content"` // base64 image bytes
	Features []feature `json:"features"`
}

type feature struct {
	Type                string              `json:"type"`
	TextDetectionConfig textDetectionConfig `json:"textDetectionConfig"`
}

type textDetectionConfig struct {
	LanguageCodes []string `json:"languageCodes"`
}

type analyzeResponse struct {
	Results []struct {
		Results []struct {
			TextDetection struct {
				Pages []struct {
					Blocks []struct {
						Lines []struct {
							Words []struct {
								Text string `json:"text"`
							} `json:"words"`
						} `json:"lines"`
					} `json:"blocks"`
				} `json:"pages"`
			} `json:"textDetection"`
		} `json:"results"`
	} `json:"results"`
}

// ExtractText sends the image for text detection and joins every
// recognized word with single spaces, preserving reading order.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	reqBody := analyzeRequest{
		FolderID: c.folderID,
		AnalyzeSpecs: []analyzeSpec{{
			Content: base64.StdEncoding.EncodeToString(image),
			Features: []feature{{
				Type:                "TEXT_DETECTION",
				TextDetectionConfig: textDetectionConfig{LanguageCodes: []string{"en", "ru"}},
			}},
		}},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ocr: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ocr: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: call %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ocr: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ocr: parse response: %w", err)
	}
	return joinWords(parsed), nil
}

// joinWords flattens the detection tree into one space-joined string.
func joinWords(resp analyzeResponse) string {
	var words []string
	for _, outer := range resp.Results {
		for _, inner := range outer.Results {
			for _, page := range inner.TextDetection.Pages {
				for _, block := range page.Blocks {
					for _, line := range block.Lines {
						for _, w := range line.Words {
							if w.Text != "" {
								words = append(words, w.Text)
							}
						}
					}
				}
			}
		}
	}
	return strings.Join(words, " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
