// Package todo holds the task list state machine and its persisted form.
//
// A task list is an ordered sequence of tasks. The persisted form is a
// JSON array, one object per task:
//
//	[
//	  {
//	    "id": "1f0c7a52-8f3e-4c55-9d7b-4c1b0f1e2a10",
//	    "text": "Buy milk",
//	    "isCompleted": false
//	  }
//	]
//
// # Store
//
// Store owns the sequence for the lifetime of the process. Every successful
// mutation (Add, Toggle, Delete) writes the full sequence to its Persistence
// before returning. The filter mode is view state only and never persisted.
//
// # Validation
//
// Decode validates persisted bytes in two passes:
//
// 1. JSON Schema validation against the embedded tasks.schema.json
// (draft 2020-12): types and required fields. Unknown fields are
// ignored and dropped on the next save.
//
// 2. Invariant checks the schema cannot express: unique ids and text that is
// not blank after trimming.
//
// # File Format
//
// Encode writes:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package todo
