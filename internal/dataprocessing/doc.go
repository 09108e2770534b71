// Package dataprocessing implements the sales report pipeline: an
// encoding-resilient loader for remote tabular exports, the row
// normalizer deriving calendar columns, the filter engine, the monthly
// aggregator, the summary calculator and the per-product rollup.
//
// Every stage consumes a complete immutable table and produces a new
// one; no stage mutates its input. The only shared state is the
// loader's bounded-time cache.
package dataprocessing
