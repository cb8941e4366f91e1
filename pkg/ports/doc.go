// Package ports declares the boundary contracts between the dialog core and
// its collaborators: content providers that own trees, loaders that read
// them from storage, and the presentation layer that consumes Navigator
// events. Adapters live under pkg/adapters.
package ports
