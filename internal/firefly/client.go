package firefly

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"campaign-gen/internal/ratio"
)

const (
	DefaultBaseURL         = "https://firefly-api.adobe.io"
	DefaultTokenURL        = "https://ims-na1.adobelogin.com/ims/token/v3"
	DefaultScope           = "openid,AdobeID,session,additional_info,read_organizations,firefly_api,ff_apis"
	DefaultVisualIntensity = 6

	MinPromptLength = 10
	MaxPromptLength = 4000

	uploadPath   = "/v2/storage/image"
	generatePath = "/v3/images/generate"

	contentClassPhoto = "photo"
	stylePresetPhoto  = "photo"
	maxErrorBody      = 4 << 10
)

var uploadMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type Options struct {
	ClientID        string
	ClientSecret    string
	BaseURL         string
	TokenURL        string
	Scope           string
	VisualIntensity int
	HTTPClient      *http.Client
	Logger          *slog.Logger
}

// Client talks to the Firefly Services API. It holds no session state: the
// caller owns the access token returned by Authenticate.
type Client struct {
	clientID        string
	clientSecret    string
	baseURL         string
	tokenURL        string
	scope           string
	visualIntensity int
	httpClient      *http.Client
	logger          *slog.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	tokenURL := strings.TrimSpace(opts.TokenURL)
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	scope := strings.TrimSpace(opts.Scope)
	if scope == "" {
		scope = DefaultScope
	}

	intensity := opts.VisualIntensity
	if intensity <= 0 {
		intensity = DefaultVisualIntensity
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		clientID:        strings.TrimSpace(opts.ClientID),
		clientSecret:    strings.TrimSpace(opts.ClientSecret),
		baseURL:         baseURL,
		tokenURL:        tokenURL,
		scope:           scope,
		visualIntensity: intensity,
		httpClient:      httpClient,
		logger:          logger,
	}
}

// UploadReference streams a local image to Firefly storage and returns its upload id.
func (c *Client) UploadReference(ctx context.Context, token, path string) (string, error) {
	mimeType, ok := uploadMIMETypes[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported reference image type %q", ErrInvalidRequest, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open reference image: %v", ErrInvalidRequest, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: stat reference image: %v", ErrInvalidRequest, err)
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return "", fmt.Errorf("%w: reference image %s is empty or not a file", ErrInvalidRequest, path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, f)
	if err != nil {
		return "", fmt.Errorf("create upload request: %w", err)
	}
	req.ContentLength = info.Size()
	req.Header.Set("content-type", mimeType)
	c.authorize(req, token)

	c.logger.Debug("uploading reference image", "path", path, "bytes", info.Size(), "mime", mimeType)

	var decoded uploadResponse
	if err := c.doJSON(OpUpload, req, &decoded); err != nil {
		return "", err
	}
	if len(decoded.Images) == 0 || strings.TrimSpace(decoded.Images[0].ID) == "" {
		return "", &Error{Op: OpUpload, Kind: KindUnexpected, Detail: "response contained no upload id"}
	}
	return decoded.Images[0].ID, nil
}

// GenerateImage requests one image for prompt at ratio r and downloads it.
// referenceID may be empty for text-only generation.
func (c *Client) GenerateImage(ctx context.Context, token, prompt string, r ratio.Ratio, referenceID string) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if n := len(prompt); n < MinPromptLength || n > MaxPromptLength {
		return nil, fmt.Errorf("%w: prompt has %d characters (allowed %d-%d)", ErrInvalidRequest, n, MinPromptLength, MaxPromptLength)
	}
	size, err := r.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	payload := generateRequest{
		Prompt:          prompt,
		NumVariations:   1,
		VisualIntensity: c.visualIntensity,
		Size:            size,
		ContentClass:    contentClassPhoto,
		Style: &style{
			Presets: []string{stylePresetPhoto},
		},
	}
	if referenceID != "" {
		payload.Style.ImageReference = &imageReference{Source: referenceSource{UploadID: referenceID}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	c.authorize(req, token)

	var decoded generateResponse
	if err := c.doJSON(OpGenerate, req, &decoded); err != nil {
		return nil, err
	}

	url := decoded.firstURL()
	if url == "" {
		return nil, &Error{Op: OpGenerate, Kind: KindUnexpected, Detail: "response contained no image url"}
	}
	return c.download(ctx, url)
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(OpDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(OpDownload, resp.StatusCode, string(raw))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(OpDownload, err)
	}
	if len(data) == 0 {
		return nil, &Error{Op: OpDownload, Kind: KindUnexpected, Detail: "downloaded image is empty"}
	}

	if format := sniffImage(data); format == "" {
		c.logger.Warn("downloaded image has unrecognised signature, trusting declared type",
			"content_type", resp.Header.Get("content-type"), "bytes", len(data))
	} else {
		c.logger.Debug("downloaded image", "format", format, "bytes", len(data))
	}
	return data, nil
}

func (c *Client) authorize(req *http.Request, token string) {
	req.Header.Set("authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.clientID)
}

func (c *Client) doJSON(op string, req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return statusError(op, resp.StatusCode, string(raw))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Kind: KindUnexpected, Detail: "decode response", Err: err}
	}
	return nil
}

func sniffImage(data []byte) string {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		return "png"
	case bytes.HasPrefix(data, jpegSignature):
		return "jpeg"
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "webp"
	default:
		return ""
	}
}

var (
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegSignature = []byte{0xff, 0xd8, 0xff}
)
