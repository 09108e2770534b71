// Package app assembles the service: configuration, logging, metrics,
// the report pipeline and the chi router with its middleware chain.
package app
