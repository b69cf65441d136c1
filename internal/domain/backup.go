package domain

import (
	"time"
)

// Backup bundle schema versions. Import refuses anything older than
// MinBundleVersion; Export always writes BundleVersion.
const (
	BundleVersion    = 2
	MinBundleVersion = 1
)

// Bundle is the serialized form of the whole store, used for backup
// export/import and by the external sync provider.
type Bundle struct {
	Version    int       `bson:"version" json:"version"`
	ExportedAt time.Time `bson:"exportedAt" json:"exportedAt"`
	Programs   []Program `bson:"programs" json:"programs"`
	Journals   []Journal `bson:"journals" json:"journals"`
	Goals      []Goal    `bson:"goals,omitempty" json:"goals,omitempty"`
	Profile    *Profile  `bson:"profile" json:"profile"`
}
