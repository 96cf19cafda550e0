package gcss

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rogtrack/rog-api/internal/logger"
)

var (
	ErrConfigInvalid = errors.New("gcss config invalid")
	ErrSignFailed    = errors.New("gcss envelope signing failed")
	ErrRequestFailed = errors.New("gcss request failed")
	ErrFault         = errors.New("gcss soap fault")
	ErrSessionClosed = errors.New("gcss session closed")
)

const (
	// Inbound shipment receipt submissions.
	ServiceShipmentReceiptsIn = "I009ShipmentReceiptsIn"
	// Document history retrieval.
	ServiceDocHistory = "br2MerDocHistory"
)

const (
	defaultPagingMax = 10000
	defaultTimeout   = 30 * time.Second
)

// Config holds the gateway connection settings. The client authenticates
// with the same certificate pair for mTLS and for WSSE message signing.
type Config struct {
	BaseURL            string
	CertFile           string
	KeyFile            string
	InsecureSkipVerify bool
	PagingMax          int
	TimeoutSeconds     int
}

// Client is a GCSS gateway client.
type Client struct {
	cfg        Config
	httpClient *http.Client
	signer     *wsseSigner
}

// NewClient loads the certificate pair and builds the mTLS transport.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	pair, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: load key pair: %v", ErrConfigInvalid, err)
	}
	signer, err := newWSSESigner(pair)
	if err != nil {
		return nil, err
	}

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.PagingMax <= 0 {
		cfg.PagingMax = defaultPagingMax
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{pair},
				// The dev gateway presents a self-signed certificate.
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
	}

	return &Client{cfg: cfg, httpClient: httpClient, signer: signer}, nil
}

// PagingMax returns the effective page size for retrieval sessions.
func (c *Client) PagingMax() int {
	return c.cfg.PagingMax
}

// serviceURL builds the endpoint for a named gateway service.
func (c *Client) serviceURL(serviceName string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/%s?wsdl", base, serviceName)
}

// InitiateUncompressed submits an escaped receipt payload to the shipment
// receipts service. The gateway returns no useful body on success, so only
// transport errors and faults are reported.
func (c *Client) InitiateUncompressed(ctx context.Context, payload string) error {
	body := fmt.Sprintf(
		`<ns:initiateUncompressed xmlns:ns="%s"><input>%s</input></ns:initiateUncompressed>`,
		nsStratis, payload)
	_, err := c.call(ctx, ServiceShipmentReceiptsIn, "initiateUncompressed", body)
	return err
}

// CompressedPayload converts rendered XML for the compressed submission
// path. Pass-through until the EXML conversion service is live.
func (c *Client) CompressedPayload(xml string) string {
	return xml
}

// call signs, stamps, posts, and fault-checks one SOAP request, returning
// the raw response body.
func (c *Client) call(ctx context.Context, serviceName, action, body string) ([]byte, error) {
	env := newEnvelope(body)
	if err := env.apply(c.signer.sign, addTimestamp); err != nil {
		return nil, err
	}

	url := c.serviceURL(serviceName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(env.render()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warnw("gcss_http_error", "service", serviceName, "action", action, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	if fault := parseFault(raw); fault != "" {
		logger.Warnw("gcss_soap_fault", "service", serviceName, "action", action, "fault", fault)
		return nil, fmt.Errorf("%w: %s", ErrFault, fault)
	}
	return raw, nil
}
