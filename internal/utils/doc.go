// Package utils provides small helpers shared by the garage client:
// identifier generation, content digests and the resty-based HTTP client.
package utils
