// Package models defines the member roster entities shared by the table engine, the data sources, and the presentation layers.
//
//   - [Member] : one roster row (id, name, email, role) plus the transient editing flag
//   - [Field] : the editable, searchable columns of a member
//
// Identity is [Member.ID]; ids come from the source and are never reassigned.
// [Member.Editing] is presentation state owned by the table engine and is never serialized.
package models
