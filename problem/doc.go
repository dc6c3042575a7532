// Package problem builds and writes RFC 9457 problem details responses
// ("application/problem+json") from classified failures.
//
//	d := problem.Build(errors.Classify(err), problem.RequestInfo{Path: r.URL.Path}, problem.BuildOptions{})
//	_ = problem.Write(w, d, problem.DefaultEncoder, problem.ContentType)
//
// Extension members (errors, traceId, requestId, ...) are flattened into the
// top-level JSON object next to the standard members.
package problem
