// Package scenario defines the in-memory model for a capsbench scenario
// and the loader that builds it from a scenario.toml document.
//
// A scenario names one green (control) agent and an ordered list of
// participant agents. Each agent carries either an explicit container
// image or an agentbeats identifier to be resolved against the registry.
// The model is built once per invocation and flows one-way through
// resolution, validation, and rendering; nothing mutates it afterwards.
package scenario
