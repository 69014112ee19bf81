package models

import "fmt"

type EmojiStatus string

const (
	StatusComponent          EmojiStatus = "component"
	StatusFullyQualified     EmojiStatus = "fully-qualified"
	StatusMinimallyQualified EmojiStatus = "minimally-qualified"
	StatusUnqualified        EmojiStatus = "unqualified"

	// StatusUnknown is only assigned when a cached record carries no status.
	// The line parser never produces it.
	StatusUnknown EmojiStatus = "unknown"
)

var knownStatuses = map[string]EmojiStatus{
	string(StatusComponent):          StatusComponent,
	string(StatusFullyQualified):     StatusFullyQualified,
	string(StatusMinimallyQualified): StatusMinimallyQualified,
	string(StatusUnqualified):        StatusUnqualified,
}

// ParseEmojiStatus maps one of the four status literals of emoji-test.txt.
func ParseEmojiStatus(s string) (EmojiStatus, error) {
	if st, ok := knownStatuses[s]; ok {
		return st, nil
	}
	return StatusUnknown, fmt.Errorf("unrecognized emoji status %q", s)
}

// StatusOrUnknown is the lenient variant used when decoding cached records.
func StatusOrUnknown(s string) EmojiStatus {
	if st, ok := knownStatuses[s]; ok {
		return st
	}
	return StatusUnknown
}

func (s EmojiStatus) String() string {
	return string(s)
}

func (s EmojiStatus) IsKnown() bool {
	_, ok := knownStatuses[string(s)]
	return ok
}
