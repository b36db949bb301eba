package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sparemart/internal/config"
	"sparemart/internal/model"
	"time"
)

// InvoiceRenderer renders an order into a PDF and uploads it to durable
// storage, returning the bytes and a long-lived signed URL. Rendering and
// upload internals live in the collaborator service.
type InvoiceRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
}

type RenderRequest struct {
	Order   *model.Order           `json:"order"`
	Address *model.ShippingAddress `json:"address"`
	Company *config.Company        `json:"company"`
	Title   string                 `json:"title"`
}

type RenderResult struct {
	PDF       []byte
	SignedURL string
}

type rendererClientImpl struct {
	httpClient *http.Client
	baseURL    string
}

func NewRendererClient(rendererCfg *config.Renderer) InvoiceRenderer {
	return &rendererClientImpl{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: rendererCfg.BaseURL,
	}
}

func (c *rendererClientImpl) Render(ctx context.Context, renderReq *RenderRequest) (*RenderResult, error) {
	body, err := json.Marshal(renderReq)
	if err != nil {
		return nil, fmt.Errorf("marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/render/invoice",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("renderer error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		URL string `json:"url"`
		PDF string `json:"pdf"` // base64
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode renderer response: %w", err)
	}

	pdf, err := base64.StdEncoding.DecodeString(result.PDF)
	if err != nil {
		return nil, fmt.Errorf("decode rendered pdf: %w", err)
	}

	return &RenderResult{
		PDF:       pdf,
		SignedURL: result.URL,
	}, nil
}
