package platform

// Package platform holds environment-facing helpers with no chat or download
// logic: supported-link detection, per-job scratch directories, output-file
// probing, and the ffmpeg availability check.
