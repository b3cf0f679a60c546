// Package http contains the chi handlers for the dashboard API: page view
// models, selector metadata, the forecast CSV export, the reload hook and
// the operational endpoints. Request-level failures render as RFC 7807
// problem responses; dataset problems never surface here as errors.
package http
