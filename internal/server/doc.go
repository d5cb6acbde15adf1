// Package server implements the MCP (Model Context Protocol) server for the
// isoline contour pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes contour rendering
// and the pixel-level inputs to it through the MCP protocol.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Contour Operations:
//   - isoline_render: Render the contour image of a file and write it out
//   - isoline_grid: Report the binary grid and cell configuration histogram
//
// Basic Image Information:
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get the color at a pixel and its inside/outside class
//
// The pipeline tools accept optional threads and sigma arguments; anything
// omitted comes from the configuration the server was created with.
//
// # Image Caching
//
// Source images are cached by path and reused across tool calls. Files written
// by isoline_render are evicted so a later call reads them afresh. The contour
// atlas is loaded once, on the first pipeline call.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
