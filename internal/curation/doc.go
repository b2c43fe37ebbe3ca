// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

/*
Package curation implements the human-in-the-loop review workflow: it turns
ranked candidates into reviewable items, applies the rule engine, and
exposes the single and batch state transitions reviewers perform.

# State machine

Every item starts Pending. The only transitions are Pending → Approved and
Pending → Rejected; both are terminal. Edits are permitted only while
Pending. Any attempt against a non-Pending item fails with
ErrInvalidTransition and leaves the item untouched.

Transitions are atomic per item (the status check and the mutation happen
under the item's own lock), so a concurrent reviewer observes
ErrInvalidTransition rather than corrupted state. There is no global lock
across items: batch operations are a sequence of independent per-item
transitions, and partial success is an expected result, not an error.

# Audit ordering

Every successful transition or edit records exactly one audit entry before
the call returns success (write-then-acknowledge). A crash between the
mutation and the audit write is the only tolerated inconsistency window.
*/
package curation
