package domain

// UnitPreference selects how values are displayed. Stored values are
// always canonical metric regardless of this setting.
type UnitPreference string

const (
	UnitsMetric   UnitPreference = "metric"
	UnitsImperial UnitPreference = "imperial"
)

// ProfileKey is the fixed document key of the singleton profile.
const ProfileKey = "profile"

// Profile is the single user profile. Height is stored in cm and is
// the canonical source for derived metrics like waist-to-height ratio.
type Profile struct {
	ID             string         `bson:"_id" json:"-"`
	Name           string         `bson:"name,omitempty" json:"name,omitempty"`
	HeightCm       *float64       `bson:"height,omitempty" json:"height,omitempty"`
	BirthDate      string         `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // YYYY-MM-DD
	Sex            string         `bson:"sex,omitempty" json:"sex,omitempty"`
	UnitPreference UnitPreference `bson:"unitPreference" json:"unitPreference"`
}

// DefaultProfile is what reads return before the user ever saved one.
func DefaultProfile() *Profile {
	return &Profile{
		ID:             ProfileKey,
		UnitPreference: UnitsMetric,
	}
}
