// Package orchestrator wires field specs, widgets and renderers together:
// it loads a document, replays submitted interactions against fresh widgets
// and renders the resulting views.
package orchestrator
