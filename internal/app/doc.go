// Package app provides the orchestration layer for cliprename.
//
// # Overview
//
// This package wires together configuration, credential resolution, the
// Twitch client, the directory scanner and the renamer into one sequential
// run. It is the composition root: every dependency is built here and passed
// down explicitly through a Session.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Build session, run once
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read TOML, env overrides, flags
//	       ├─────> credentials.Resolve()  Files, env, then prompt (+ save)
//	       ├─────> FetchToken()           Client-credentials exchange
//	       ├─────> scan.Dir()             <date>…_<id>_source….mp4 files
//	       ├─────> FetchClips()           One batched Helix lookup
//	       └─────> rename.Renamer.Run()   Rename + audit log bracket
//
// Each stage consumes the previous stage's output. The first failing stage
// ends the run; its error is printed with its Kind and returned to the
// caller, which chooses the exit code.
//
// # Error Kinds
//
// Kind maps typed errors from the domain packages to stable labels:
//
//   - credential_read, credential_write: credentials.ReadError / WriteError
//   - token_request, metadata_request: twitch.RequestError by Op
//   - consistency, file_rename, timestamp: rename errors
//   - config: ConfigError
//
// Anything else is reported as unknown.
//
// # Testing
//
// Options accepts a Prompter and a ClipFetcher so tests can script input and
// point the pipeline at httptest servers through the token_url and clips_url
// config keys.
package app
