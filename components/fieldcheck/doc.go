// Package fieldcheck exposes field validation as a small net/http handler so
// browser runtimes can ask the server whether a value passes a field pattern.
//
// The handler responds to GET and HEAD requests:
//
//	GET /api/fields/check?kind=number&value=12.5
//	{"data":{"kind":"number","value":"12.5","valid":true}}
//
// A field parameter resolves a named field registered with WithFields instead
// of a built-in kind.
package fieldcheck
