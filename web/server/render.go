package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// formatJSON wraps the PNG and the render log in a JSON document
const formatJSON = "json"

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID, e.g. "cornell-box"
	Width   int    `json:"width"`   // Image width, height follows the scene's aspect ratio
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounces, 0 keeps the scene default
	Seed    int64  `json:"seed"`
	Format  string `json:"format"` // "png", "ppm" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TotalTiles     int     `json:"totalTiles"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// RenderResponse is returned for format=json: the image as base64 PNG plus the render log
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"`
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(c echo.Context) (*RenderRequest, error) {
	req := &RenderRequest{Scene: c.QueryParam("scene")}
	if req.Scene == "" {
		req.Scene = "cornell-box"
	}

	var err error
	if req.Width, err = intParam(c, "width", 400, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = intParam(c, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = intParam(c, "depth", 0, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := intParam(c, "seed", int(renderer.DefaultConfig().Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	req.Format = strings.ToLower(c.QueryParam("format"))
	switch req.Format {
	case "":
		req.Format = string(renderer.FormatPNG)
	case formatJSON:
	default:
		if _, err := renderer.ParseFormat(req.Format); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// handleRender renders a scene synchronously and returns the image.
// A client disconnect cancels the render through the request context.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	logger := NewWebLogger(renderID, consoleChan)

	sceneObj, err := scene.Build(req.Scene, scene.Options{
		Seed:       req.Seed,
		TextureDir: s.textureDir,
		Camera: geometry.CameraConfig{
			ImageWidth:      req.Width,
			SamplesPerPixel: req.Samples,
			MaxDepth:        req.Depth,
		},
		Logger: logger,
	})
	if err != nil {
		if errors.Is(err, scene.ErrUnknownScene) {
			return jsonError(c, http.StatusBadRequest, err)
		}
		return jsonError(c, http.StatusInternalServerError, err)
	}

	config := renderer.DefaultConfig()
	config.Seed = req.Seed

	frame, stats, err := renderer.NewRaytracer(sceneObj, config, logger).Render(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusServiceUnavailable, fmt.Errorf("render error: %w", err))
	}

	if req.Format == formatJSON {
		var buf bytes.Buffer
		if err := renderer.WritePNG(&buf, frame); err != nil {
			return jsonError(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, RenderResponse{
			Scene:     req.Scene,
			Width:     frame.Width,
			Height:    frame.Height,
			ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
			Stats: Stats{
				TotalPixels:    stats.TotalPixels,
				TotalSamples:   int64(stats.TotalSamples),
				AverageSamples: stats.AverageSamples(),
				TotalTiles:     stats.TotalTiles,
				ElapsedMs:      stats.Duration.Milliseconds(),
			},
			Console: drainConsole(consoleChan),
		})
	}

	format := renderer.Format(req.Format)
	var buf bytes.Buffer
	if err := renderer.Write(&buf, frame, format); err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}
	contentType := "image/png"
	if format == renderer.FormatPPM {
		contentType = "image/x-portable-pixmap"
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
