// Package api hosts the HTTP server, middleware, and REST handlers for the
// webhook service. Notable routes:
//   - POST /api/v1/webhook/jotform for single form submissions (JSON or
//     form-encoded bodies) and /jotform/bulk for arrays of submissions.
//   - GET/PUT/DELETE /api/v1/webhook/empreendedores/{id} plus POST /search and
//     GET /stats for record management via the store.Repository interface.
//   - GET /health for probes and GET /metrics for Prometheus scraping.
package api
