// Package exporter serializes the final report table for download: CSV
// with a UTF-8 byte-order mark, plus the filename suggestion derived
// from the active filter selections.
package exporter
