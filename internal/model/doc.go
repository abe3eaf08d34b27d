package model

// Package model defines domain data structures shared across the bot: the
// per-chat conversation session, the immutable download job request, progress
// events emitted while a job runs, and the job result variants.
