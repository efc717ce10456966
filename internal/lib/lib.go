// Package lib holds code that does not belong to a single layer: shared
// helpers (utils), background email jobs on asynq (job) and the Resend
// email client (email).
package lib
