// Package httpapi serves the read-only reporting endpoints of the library over HTTP.
//
// Every list endpoint passes its query string through the filter registry of its entity,
// so unknown parameters and malformed values are answered with 400 Bad Request.
package httpapi
