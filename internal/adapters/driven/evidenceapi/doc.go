// Package evidenceapi is the HTTP client for the forensics backend.
//
// It implements driven.EvidenceStore, driven.PostSource and driven.Classifier
// against the backend REST endpoints:
//
//	GET  /get-evidence?id=N
//	POST /fetch-evidence   {tx_hash}
//	POST /fetch-x-post     {post_id, input_text}
//	POST /analyze-content  {tweet_text, visual_text}
//
// Responses are decoded into wire structs and mapped to domain types here,
// so core services never see loosely-typed JSON. HTTP failures are mapped
// onto the domain lookup errors: 400/404 to ErrNotFound, 401/403 to
// ErrUnauthorized, and 408/429/5xx or transport failures to ErrUnavailable.
package evidenceapi
