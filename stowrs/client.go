// Package stowrs implements a STOW-RS (DICOM PS3.18 Section 6.6, "Store
// Transaction") client: uploading one or more DICOM instances to a DICOMweb
// origin server over HTTP using multipart/related.
//
// No third-party HTTP client library in this module's dependency graph
// offers multipart/related support beyond what net/http and mime/multipart
// already provide, so this package is built directly on the standard
// library (documented as such in the project's design notes).
package stowrs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

// ErrRejected is returned when the origin server responds with a non-2xx
// status to a Store Transaction request.
var ErrRejected = errors.New("stowrs: store transaction rejected")

// dicomMediaType is the multipart/related part Content-Type for a DICOM
// Part 10 instance, per PS3.18 Section 6.6.1.
const dicomMediaType = `application/dicom`

// Client is a STOW-RS origin server client bound to one Study-level or
// Service-level store URL.
type Client struct {
	// BaseURL is the STOW-RS store URL, e.g.
	// "https://dicomweb.example.org/studies" for the service-level
	// resource, or a study-scoped URL to constrain the upload.
	BaseURL string
	// HTTPClient is the transport used to issue requests. If nil, a client
	// with a conservative timeout is constructed lazily.
	HTTPClient *http.Client
	// Headers is copied onto every request (e.g. Authorization).
	Headers http.Header
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

// UploadPayload uploads a single pre-built multipart payload, such as one
// produced by PreparePayload.
func (c *Client) UploadPayload(ctx context.Context, payload *Payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload.Body))
	if err != nil {
		return fmt.Errorf("stowrs: build request: %w", err)
	}
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/dicom+json")
	for k, vs := range c.Headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("stowrs: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(body))
	}
	return nil
}

// UploadStream uploads a single DICOM Part 10 instance read in full from r.
func (c *Client) UploadStream(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("stowrs: read instance: %w", err)
	}
	payload, err := PreparePayload([][]byte{data})
	if err != nil {
		return fmt.Errorf("stowrs: prepare payload: %w", err)
	}
	return c.UploadPayload(ctx, payload)
}

// Payload is a pre-built multipart/related request body, ready to POST to
// a STOW-RS store URL.
type Payload struct {
	ContentType string
	Body        []byte
}

// PreparePayload wraps one or more complete DICOM Part 10 instances (each
// including preamble, "DICM", file meta information, and dataset) into a
// single multipart/related payload per PS3.18 Section 6.6.1.2.
func PreparePayload(instances [][]byte) (*Payload, error) {
	if len(instances) == 0 {
		return nil, fmt.Errorf("stowrs: no instances to upload")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, instance := range instances {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Type", dicomMediaType)
		header.Set("Content-ID", fmt.Sprintf("<instance-%d>", i))

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("stowrs: create part %d: %w", i, err)
		}
		if _, err := part.Write(instance); err != nil {
			return nil, fmt.Errorf("stowrs: write part %d: %w", i, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("stowrs: close multipart writer: %w", err)
	}

	contentType := fmt.Sprintf(`multipart/related; type="%s"; boundary=%s`, dicomMediaType, w.Boundary())
	return &Payload{ContentType: contentType, Body: buf.Bytes()}, nil
}
