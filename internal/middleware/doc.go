// Package middleware provides HTTP middleware for the museum server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics with bounded label cardinality
//   - Response compression (gzip) for the JSON API and UI shell
package middleware
