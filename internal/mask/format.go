package mask

import "unicode"

// DefaultPlaceholder renders unfilled slots.
const DefaultPlaceholder = '_'

// EscapeChar makes the following pattern character a literal.
const EscapeChar = '\\'

// FormatCharacter defines the class of an editable slot.
type FormatCharacter struct {
	// Validate reports whether r may fill the slot.
	Validate func(r rune) bool
	// Transform rewrites an accepted rune before it is stored. Optional.
	Transform func(r rune) rune
}

// FormatCharacters maps a pattern character to its slot class.
type FormatCharacters map[rune]FormatCharacter

// DefaultFormatCharacters returns the built-in slot classes:
//
//	*  any ASCII letter or digit
//	1  digit
//	a  letter
//	A  letter, stored upper case
//	#  letter or digit, stored upper case
func DefaultFormatCharacters() FormatCharacters {
	return FormatCharacters{
		'*': {Validate: isAlnum},
		'1': {Validate: isDigit},
		'a': {Validate: isLetter},
		'A': {Validate: isLetter, Transform: unicode.ToUpper},
		'#': {Validate: isAlnum, Transform: unicode.ToUpper},
	}
}

// Merge returns the defaults overlaid with custom. An entry with a nil
// Validate removes that character from the result.
func Merge(custom FormatCharacters) FormatCharacters {
	merged := DefaultFormatCharacters()
	for ch, fc := range custom {
		if fc.Validate == nil {
			delete(merged, ch)
			continue
		}
		merged[ch] = fc
	}
	return merged
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnum(r rune) bool {
	return isDigit(r) || isLetter(r)
}
