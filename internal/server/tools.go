package server

import "github.com/ironsheep/isoline/internal/isoline"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// pipelineOverrides are the optional per-call settings shared by the
// pipeline tools.
func pipelineOverrides(props map[string]interface{}) map[string]interface{} {
	props["threads"] = map[string]interface{}{
		"type":        "integer",
		"description": "Worker count (>= 1). Defaults to the configured thread count",
		"minimum":     1,
		"maximum":     isoline.MaxWorkers,
	}
	props["sigma"] = map[string]interface{}{
		"type":        "integer",
		"description": "Luminance threshold (0-255); brighter pixels are outside. Defaults to the configured sigma",
		"minimum":     0,
		"maximum":     255,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Contour Operations
		{
			Name:        "isoline_render",
			Description: "Rescale an image to the configured resolution, trace its isolines with marching squares and write the result. The output format follows the file extension (.ppm, .pnm, .png, .jpg, .bmp, optionally with .zst).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": pipelineOverrides(map[string]interface{}{
					"path":   pathProperty("Absolute path to the source image"),
					"output": pathProperty("Absolute path of the contour image to write"),
				}),
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "isoline_grid",
			Description: "Run the contour pipeline without writing a file and report the binary grid: its size, how many sample points are inside, and how often each of the 16 cell configurations occurs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": pipelineOverrides(map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
				}),
				"required": []string{"path"},
			},
		},

		// Basic Image Information
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color at a pixel, its luminance, and whether the contour threshold classifies it as inside.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
					"sigma": map[string]interface{}{
						"type":        "integer",
						"description": "Luminance threshold (0-255). Defaults to the configured sigma",
						"minimum":     0,
						"maximum":     255,
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
