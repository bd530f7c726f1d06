// Package stream provides a buffered, branchable cursor over a sequence of
// elements that may be produced asynchronously and incrementally.
//
// # Overview
//
// A Source produces elements one at a time; a Cursor records everything the
// source has produced so far in an append-only buffer and exposes a movable
// reading position over it. Branches are lightweight child positions sharing
// the cursor's buffer, used to explore the sequence speculatively and either
// keep or discard the exploration by moving the parent or disposing the
// branch.
//
//	┌──────────┐     ┌──────────────────────────┐
//	│  Source  │────▶│  Cursor (buffer, pos)    │
//	│ (pulled) │     │   ├── Branch (pos)       │
//	└──────────┘     │   └── Branch (pos)       │
//	                 └──────────────────────────┘
//
// # Reading Model
//
// Reads are pull-based: Peek and Take block (honoring the context) until the
// element at the current position has been produced, the source completes, or
// the source fails. Elements already recorded are replayed from the buffer,
// so any number of branches can read the same region independently.
//
// # Retention
//
// A forward-only cursor trims buffered elements as soon as no reader can
// reach them again: after every forward move and every branch disposal the
// cursor computes the minimum position over itself and all live branches and
// drops everything before it. Seekable cursors retain the full buffer so the
// position can move backward and reads can be replayed.
//
// # Termination
//
// The source terminates the sequence exactly once, either by completing or by
// failing. On termination every reader's position is clamped to one past the
// final element, including positions that had already moved beyond it.
//
// # Thread Safety
//
// A Cursor and its branches are not safe for concurrent use; exactly one
// logical consumer drives a cursor. A Source adapter may be fed from other
// goroutines (for example through a channel), which is where cross-goroutine
// synchronization belongs.
package stream
