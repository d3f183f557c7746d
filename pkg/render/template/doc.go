// Package template defines the renderer seam used by the fragment handlers and
// the errors a renderer reports. A template is one logical page made of named
// blocks; callers ask for a single block (or a handful of blocks) instead of the
// whole page so a response carries only the markup that changed.
package template
