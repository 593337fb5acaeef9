// Package httpclient provides a small HTTP client wrapper with header-based
// authentication, multipart bodies, JSON helpers, and status-code error
// classification. It is the transport layer underneath the elevateai client.
package httpclient
