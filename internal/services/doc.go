// Package services wires the report pipeline stages into the
// operations the transport layer and CLI consume: filter options
// discovery, full report runs and CSV export.
package services
