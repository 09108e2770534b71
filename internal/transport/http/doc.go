// Package http exposes the report pipeline over a chi-based JSON API:
// filter options discovery, report runs, CSV export downloads and
// health probes. Errors render as RFC 7807 problem details.
package http
