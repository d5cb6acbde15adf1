package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ironsheep/isoline/internal/isoline"
	"github.com/ironsheep/isoline/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "isoline_render", "image_dimensions").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Contour Operations
	case "isoline_render":
		return s.handleIsolineRender(args)
	case "isoline_grid":
		return s.handleIsolineGrid(args)

	// Basic Image Information
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Contour Operation Handlers ===

type pipelineArgs struct {
	Path    string `json:"path"`
	Threads *int   `json:"threads"`
	Sigma   *int   `json:"sigma"`
}

// prepare resolves the per-call overrides against the configuration and
// builds a pipeline for them. Nothing is decoded yet.
func (s *Server) prepare(a pipelineArgs) (*isoline.Pipeline, int, error) {
	threads := s.cfg.Threads
	if a.Threads != nil {
		threads = *a.Threads
	}
	if threads < 1 || threads > isoline.MaxWorkers {
		return nil, 0, fmt.Errorf("%w: threads %d outside [1,%d]", isoline.ErrUsage, threads, isoline.MaxWorkers)
	}

	params := s.cfg.Params()
	if a.Sigma != nil {
		params.Sigma = *a.Sigma
	}

	at, err := s.contourAtlas()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load contour atlas: %w", err)
	}
	pl, err := isoline.New(params, at)
	if err != nil {
		return nil, 0, err
	}
	return pl, threads, nil
}

type isolineRenderArgs struct {
	pipelineArgs
	Output string `json:"output"`
}

// RenderResult reports a finished isoline_render call.
type RenderResult struct {
	Output    string  `json:"output"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Threads   int     `json:"threads"`
	Sigma     int     `json:"sigma"`
	Inside    int     `json:"inside_points"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

func (s *Server) handleIsolineRender(args json.RawMessage) (interface{}, error) {
	var a isolineRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("%w: output path is required", isoline.ErrUsage)
	}
	if !raster.CanEncode(a.Output) {
		return nil, fmt.Errorf("%w: unsupported output format %q", isoline.ErrUsage, a.Output)
	}

	pl, threads, err := s.prepare(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := pl.Run(src, threads, func(img *raster.Image) error {
		return raster.Encode(img, a.Output)
	})
	if err != nil {
		return nil, err
	}
	// The output may overwrite a file an earlier call cached.
	s.cache.Evict(a.Output)

	return &RenderResult{
		Output:    a.Output,
		Width:     res.Image.Width,
		Height:    res.Image.Height,
		Threads:   threads,
		Sigma:     pl.Params().Sigma,
		Inside:    res.Grid.Inside(),
		ElapsedMs: float64(res.Elapsed) / float64(time.Millisecond),
	}, nil
}

// GridResult reports the binary grid of an isoline_grid call.
type GridResult struct {
	Rows      int     `json:"rows"` // cell rows; the grid has one more row of sample points
	Cols      int     `json:"cols"`
	Points    int     `json:"points"`
	Inside    int     `json:"inside_points"`
	Sigma     int     `json:"sigma"`
	Histogram [16]int `json:"histogram"` // cells per configuration code 0-15
	ElapsedMs float64 `json:"elapsed_ms"`
}

func (s *Server) handleIsolineGrid(args json.RawMessage) (interface{}, error) {
	var a pipelineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	pl, threads, err := s.prepare(a)
	if err != nil {
		return nil, err
	}
	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, err := pl.Run(src, threads, nil)
	if err != nil {
		return nil, err
	}

	g := res.Grid
	return &GridResult{
		Rows:      g.Rows,
		Cols:      g.Cols,
		Points:    (g.Rows + 1) * (g.Cols + 1),
		Inside:    g.Inside(),
		Sigma:     pl.Params().Sigma,
		Histogram: g.Histogram(),
		ElapsedMs: float64(res.Elapsed) / float64(time.Millisecond),
	}, nil
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

// Dimensions contains the width and height of an image.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return &Dimensions{Width: img.Width, Height: img.Height}, nil
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path  string `json:"path"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Sigma *int   `json:"sigma"`
}

// SampleResult is a pixel's colour together with its contour classification.
type SampleResult struct {
	raster.ColorInfo
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Sigma  int  `json:"sigma"`
	Inside bool `json:"inside"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sigma := s.cfg.Sigma
	if a.Sigma != nil {
		sigma = *a.Sigma
	}
	if sigma < 0 || sigma > 255 {
		return nil, fmt.Errorf("%w: sigma %d outside [0,255]", isoline.ErrUsage, sigma)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.X < 0 || a.X >= img.Width || a.Y < 0 || a.Y >= img.Height {
		return nil, fmt.Errorf("coordinates (%d, %d) out of bounds (image is %dx%d)", a.X, a.Y, img.Width, img.Height)
	}

	info := raster.Describe(img.Pixel(a.X, a.Y))
	return &SampleResult{
		ColorInfo: info,
		X:         a.X,
		Y:         a.Y,
		Sigma:     sigma,
		Inside:    int(info.Luminance) <= sigma,
	}, nil
}
