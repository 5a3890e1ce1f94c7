// Package http exposes the cleaning pipeline over HTTP: multipart file
// upload in, cleaning report and downloadable cleaned CSV out. The
// pipeline itself never sees HTTP concerns; this package only adapts
// requests to per-run configurations and renders the results.
package http
