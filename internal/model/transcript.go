package model

import "time"

// TranscriptSegment is a finalized speech segment. Immutable once
// appended: the speaker name is captured at emission time and never
// re-resolved. Ordering within a room is insertion order, not timestamp
// order.
type TranscriptSegment struct {
	UserID    string    `json:"userId" bson:"userId"`
	Name      string    `json:"name" bson:"name"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"ts" bson:"ts"`
}
