// Package codec implements the stored representations of the note collection.
//
// JSON is the canonical format: a compact array of
// {"id","title","content","createdAt","updatedAt"} records whose timestamps are
// ISO-8601 strings with millisecond precision, the form produced by browsers'
// Date.prototype.toISOString. YAML is offered for exports.
//
// Decoders validate every record on its own: a malformed record is skipped and
// reported, the rest of the collection survives.
package codec
