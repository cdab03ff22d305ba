// Package api is the HTTP glue around the XML codec: it binds the response
// format to each request, reads and decompresses request bodies within a
// size limit, renders value trees in the bound format and maps codec errors
// to HTTP statuses.
//
// The handlers serve a subset of the 0.6 API:
//
//	GET  /api/0.6/{type}/{id}[.json|.xml]
//	PUT  /api/0.6/{type}/create
//	POST /api/0.6/changeset/{id}/upload
package api
