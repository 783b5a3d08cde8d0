package sidekick

import "encoding/json"

// MergeWithDefaults turns a stored value of any vintage into a complete
// Document.
//
// A value that is not a JSON object yields Default(). Otherwise every group
// is merged one level deep over its defaults: a sub-field keeps its default
// unless the stored object supplies that exact sub-field with a value of the
// right shape. Members the document does not model are kept in the Extra
// maps. The result always carries CurrentSchemaVersion.
//
// MergeWithDefaults is pure and idempotent: merging the encoding of its
// result yields an equal document.
func MergeWithDefaults(raw json.RawMessage) Document {
	doc := Default()
	if !isJSONObject(raw) {
		return doc
	}
	if err := decodeRecord(raw, &doc); err != nil {
		return Default()
	}
	doc.SchemaVersion = CurrentSchemaVersion
	return doc
}
