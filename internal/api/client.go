// Package api talks to a flight log server: a health probe and multipart
// upload of finished flight recordings.
package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/steamgauges/extension/pkg/core"
)

// UploadPath is where recordings are posted.
const UploadPath = "/api/v1/flights/add"

// FlightMeta describes an uploaded recording.
type FlightMeta struct {
	Vessel           string
	Body             string
	Key              string
	Duration         time.Duration
	ExtensionVersion string
}

// MetaFromFlight fills FlightMeta from a flight that ended at end.
func MetaFromFlight(f core.Flight, end time.Time) FlightMeta {
	m := FlightMeta{
		Vessel:           f.VesselName,
		Body:             f.Body,
		Key:              f.Key,
		ExtensionVersion: f.ExtensionVersion,
	}
	if !f.StartTime.IsZero() && end.After(f.StartTime) {
		m.Duration = end.Sub(f.StartTime)
	}
	return m
}

// Client handles communication with the flight log server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Healthcheck checks if the server is reachable.
func (c *Client) Healthcheck() error {
	resp, err := c.httpClient.Get(c.baseURL + "/healthcheck")
	if err != nil {
		return fmt.Errorf("healthcheck request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck returned status %d", resp.StatusCode)
	}
	return nil
}

// Upload streams a recording file to the server with its metadata.
func (c *Client) Upload(filePath string, meta FlightMeta) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	errCh := make(chan error, 1)
	go func() {
		fields := [][2]string{
			{"secret", c.apiKey},
			{"filename", filepath.Base(filePath)},
			{"vessel", meta.Vessel},
			{"body", meta.Body},
			{"flightKey", meta.Key},
			{"duration", strconv.FormatFloat(meta.Duration.Seconds(), 'f', 1, 64)},
			{"extensionVersion", meta.ExtensionVersion},
		}
		for _, f := range fields {
			if err := writer.WriteField(f[0], f[1]); err != nil {
				pw.CloseWithError(err)
				errCh <- err
				return
			}
		}

		part, err := writer.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			err = fmt.Errorf("failed to create form file: %w", err)
			pw.CloseWithError(err)
			errCh <- err
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			err = fmt.Errorf("failed to copy file: %w", err)
			pw.CloseWithError(err)
			errCh <- err
			return
		}
		errCh <- writer.Close()
		pw.Close()
	}()

	req, err := http.NewRequest(http.MethodPost, c.baseURL+UploadPath, pr)
	if err != nil {
		pr.Close()
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		pr.Close()
		<-errCh
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		pr.Close()
		<-errCh
		return fmt.Errorf("upload returned status %d", resp.StatusCode)
	}
	return <-errCh
}
