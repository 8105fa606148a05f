// Package httpclient performs timeout-bounded HTTP calls with bounded,
// backed-off retries on behalf of upstream provider adapters.
//
// Failures are classified into three types:
//   - HTTPError: the server answered with a non-2xx status (not retried)
//   - NetworkError: the connection itself failed (retried)
//   - TimeoutError: the per-attempt deadline expired (retried)
//
// A caller-supplied predicate can override which classifications are
// retry-eligible. When all attempts fail the last observed error is
// returned as-is, so callers can classify it with errors.As.
package httpclient
