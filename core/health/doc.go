// Package health provides liveness and readiness handlers for orchestrator probes.
//
// Liveness answers "ALIVE" as long as the process can serve requests.
// Readiness runs every registered Check and answers "READY", or 503 when a
// dependency such as Redis is unreachable.
package health
