// Curator - Recommendation Curation Engine
// Copyright 2026 IARECOMEND
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/iarecomend/curator

// Package api exposes the curation workflow over HTTP.
//
// Every endpoint returns the APIResponse envelope. Mutating endpoints read
// the acting reviewer from the X-Reviewer header and fall back to
// "anonymous"; there is no authentication layer, the service is expected to
// run behind one.
//
// Route tree (all under /api/v1):
//
//	POST   /recommendations/generate     generate a recommendation batch
//	GET    /curation/items               list items (status, q filters)
//	GET    /curation/items/{id}          fetch one item
//	PATCH  /curation/items/{id}          edit a pending item
//	POST   /curation/items/{id}/approve  approve
//	POST   /curation/items/{id}/reject   reject
//	POST   /curation/batch/approve       best-effort bulk approve
//	POST   /curation/batch/reject        best-effort bulk reject
//	GET    /curation/stats               status counters
//	GET/POST/DELETE /curation/selection  reviewer selection state
//	GET    /rules  POST /rules           rule registry
//	POST   /rules/{id}/toggle            flip a rule's active flag
//	DELETE /rules/{id}                   remove a rule
//	GET    /audit                        audit log, newest first
package api
