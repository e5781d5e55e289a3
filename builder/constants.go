// Package builder defines the method tokens used as error context and the
// defaults shared by all builders.
package builder

//-----------------------------------------------------------------------------
// Builder Method Name Constants
//   used to prefix errors with the failing call for context.
//-----------------------------------------------------------------------------

const (
	// MethodAddElement is the canonical name for AddElement.
	MethodAddElement = "AddElement"
	// MethodOpenSeries is the canonical name for OpenSeries.
	MethodOpenSeries = "OpenSeries"
	// MethodOpenParallel is the canonical name for OpenParallel.
	MethodOpenParallel = "OpenParallel"
	// MethodOpenContainer is the canonical name for OpenContainer.
	MethodOpenContainer = "OpenContainer"
	// MethodClose is the canonical name for Close.
	MethodClose = "Close"
	// MethodBuild is the canonical name for Build.
	MethodBuild = "Build"
)

//-----------------------------------------------------------------------------
// Limits
//-----------------------------------------------------------------------------

// DefaultMaxDepth is the default nesting limit of open frames above the root.
// Real equivalent circuits rarely nest deeper than a handful of levels.
const DefaultMaxDepth = 64

// MinMaxDepth is the smallest meaningful nesting limit: one frame above root.
const MinMaxDepth = 1
