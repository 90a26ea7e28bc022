/*
Package session keeps one live presentation per session ID.

Sessions are opened lazily through a factory and closed explicitly. Access to a
session ID is serialized by a reference-counted local lock and, optionally, a
distributed lock so several replicas sharing a location store do not open the
same session concurrently.
*/
package session
