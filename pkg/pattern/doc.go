// Package pattern wraps Go regular expressions with the semantics of the HTML
// pattern attribute: the expression must match the whole value, and the
// uncompiled source is kept so renderers can emit it back into markup.
package pattern
