// Package project loads protocol documents from disk.
//
// A document is a YAML (or JSON, which YAML subsumes) description of one
// protocol: its named types, its function signatures and the generation
// settings for one invocation. Load validates the document and Build
// converts it into the in-memory protocol builder, so the command line
// and programmatic callers share one front door into the pipeline.
package project
