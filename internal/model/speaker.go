package model

import "time"

// SpeakerCategory classifies a speaker for fiscal purposes.  The
// category determines the ISR withholding rate applied when one of
// the speaker's payments completes: national, expert and special
// guest speakers are withheld at 5%, international speakers at 7%.
type SpeakerCategory string

const (
	CategoryNational      SpeakerCategory = "national"
	CategoryInternational SpeakerCategory = "international"
	CategoryExpert        SpeakerCategory = "expert"
	CategorySpecialGuest  SpeakerCategory = "special_guest"
)

// Valid reports whether the category is one of the known values.
func (c SpeakerCategory) Valid() bool {
	switch c {
	case CategoryNational, CategoryInternational, CategoryExpert, CategorySpecialGuest:
		return true
	}
	return false
}

// Speaker is the person being booked into events.  Only the fields
// the engagement engine needs are modeled here; contact details and
// profile data live with the upstream directory service.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – display name for diagnostics and event payloads.
//  Category  – fiscal category (see SpeakerCategory).
//  CreatedAt – creation timestamp.
type Speaker struct {
	ID        uint64          // speakers.id
	FullName  string          // speakers.full_name
	Category  SpeakerCategory // speakers.category
	CreatedAt time.Time       // speakers.created_at
}
