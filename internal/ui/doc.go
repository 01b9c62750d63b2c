// Package ui renders console output and collects interactive input.
//
// Console prints leveled status lines styled from a named theme and falls
// back to plain text when colors are disabled. Prompter is the input
// provider injected into the pipeline: TerminalPrompter runs a small Bubble
// Tea program per question, LinePrompter reads lines from any io.Reader.
package ui
