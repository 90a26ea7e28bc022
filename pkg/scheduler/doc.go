/*
Package scheduler provides the deferred-task primitive the navigation
controller runs on.

All callbacks run on a single goroutine, one at a time, so controller state
needs no locking. Loop is the production implementation backed by real timers;
Manual is a virtual clock for tests that fires tasks only when advanced.

Scheduled tasks cannot be cancelled. Each scheduling call returns a Handle
identifying the task.
*/
package scheduler
