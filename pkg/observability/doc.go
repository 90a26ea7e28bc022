/*
Package observability provides tools for monitoring slide navigation.

It includes lifecycle hooks that log every transition and Prometheus metrics
for slide visits, rejected requests and activations. Combine both with
domain.MergeHooks.
*/
package observability
