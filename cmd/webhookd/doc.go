// Package main hosts the webhook service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes the Jotform webhook intake, bulk intake,
//     entrepreneur CRUD/search/stats endpoints, health, and metrics. Request bodies are
//     mapped from whatever shape the form producer sends (flat object, array-wrapped,
//     rawRequest envelope, form-encoded) into canonical fields by internal/ingest.
//   - Normalization: internal/ingest validates the mandatory fields, assembles names and
//     phone numbers from split parts, cleans CPF digits, and stamps defaults before a
//     record ever reaches storage.
//   - Persistence: internal/storage/postgres persists records via pgxpool. Creation runs
//     inside one transaction that rejects recent duplicate submissions and renames exact
//     phone collisions with a numeric suffix. internal/storage/memory implements the same
//     contract for tests and local runs.
//   - Forwarding: accepted records are posted to the configured downstream URL on a
//     best-effort basis; failures are logged and never affect the producer's response.
//   - Configuration & plumbing: Viper populates config from env (WEBHOOK_ prefix) and
//     optional file; zap provides structured logging; Prometheus collectors are exported
//     via the telemetry middleware and /metrics handler.
//
// Operational notes:
//   - Shutdown is coordinated via signal.NotifyContext; SIGTERM drains in-flight requests
//     through http.Server.Shutdown with a 10s deadline.
//   - The service is stateless across requests; duplicate detection lives in the database
//     transaction, so multiple replicas behave identically.
//
// Run locally: go run ./cmd/webhookd -config config.yaml (or rely solely on env
// overrides such as WEBHOOK_DB_DSN and WEBHOOK_SERVER_PORT).
package main
