// Package workspace implements the layout engine for the lexspace
// multi-pane document workspace.
//
// # Overview
//
// A workspace is a window subdivided into rows of resizable panes, each
// pane holding an ordered set of tabs (open documents and previews). This
// package owns the data model and the algorithms that keep it consistent:
// how panes are grouped into rows, how relative pane sizes (weights) are
// computed and normalized, and how a preview tab derived from a source
// document is placed into the arrangement without violating the model's
// invariants.
//
// # Data model
//
// [Workspace] holds the pane set, the row set, and the single active pane.
// [Row] owns an ordered pane sequence and a weight map with exactly one
// positive entry per pane. [Pane] owns an ordered tab sequence with a
// companion position index and an active tab. [Tab] is a document or
// preview view; preview tabs for the same source document share one
// identifier derived with [PreviewTabID], which makes repeated placement
// collapse to a single tab.
//
// # Weights
//
// Weights are relative shares, not normalized fractions. A split divides
// the active pane's weight evenly between it and its new sibling, clamped
// so neither falls below the normalizer's minimum. When the clamp wins on
// both sides the row's total exceeds its previous value; renderers divide
// by [Row.TotalWeight] when sizing, so relative shares stay correct.
//
// # Placement
//
// [Placer.PlacePreview] is the top-level operation. With a single pane it
// splits the workspace; with several it routes the preview into the pane
// cyclically following the active one, away from where the user is
// editing. See the Placer documentation for the exact algorithm.
//
// # Identifier allocation
//
// Fresh pane and row identifiers come from an injectable [IDSource]:
// [CounterSource] produces deterministic IDs for tests, [UUIDSource]
// random ones for production.
//
// # Errors and concurrency
//
// The engine has no I/O. Its errors are precondition violations - bugs in
// the surrounding state management - and callers should log them and skip
// the operation rather than surface them to the user. Nothing here is safe
// for concurrent use: the engine runs synchronously on the UI event loop,
// and every operation completes in time linear in the pane, row, and tab
// counts.
package workspace
