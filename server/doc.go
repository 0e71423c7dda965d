// Package server hosts a provider over HTTP: Gin routes behind net/http
// middleware, served over HTTP/1.1 and h2c.
//
// Routes:
//
//   - POST /v1/invoke: {"query": "..."} answered as {"data": {"query", "response"}}
//   - GET /health: component health, 503 when a component is down
//   - GET /version: build identity
//
// Failures use the errors package envelope. Backend failures map to 502 or
// 504 with the backend name in the details; request problems map to 400.
package server
