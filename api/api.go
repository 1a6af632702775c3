// Package api holds the HTTP contract of the storefront.
package api

import _ "embed"

// Spec is the OpenAPI 3 document describing every route the server registers.
//
//go:embed openapi.yaml
var Spec []byte
