// Package pme computes private-equity investment performance metrics from
// irregular, date-stamped cash-flow and valuation records, benchmarked
// against a daily market index.
//
// The core functionalities include:
//   - Time Series: an explicit date-keyed series with well-defined
//     merge/align/sum operations (union of dates, zero-fill on missing).
//   - Valuation Engine: a net-present-value valuator under a fixed
//     daily-compounding convention, and a failure-aware internal-rate-of-return
//     solver that brackets and bisects the NPV function.
//   - Performance Metrics: TVPI, DPI, IRR, the Kaplan-Schoar public-market
//     equivalent (KSPME) and Direct Alpha, per fund and for the aggregated
//     portfolio, using future-value scaling against a benchmark index.
//   - Fund Records: decoding and canonical encoding of the cash-flow and
//     valuation records in a human-readable, version-controllable JSONL format.
//   - Benchmark Data: building a dense daily index (non-trading days carried
//     forward) from prices fetched from eodhd.com or any JSON endpoint.
//
// This package serves as the foundational logic for the `pme` command-line
// tool.
package pme
