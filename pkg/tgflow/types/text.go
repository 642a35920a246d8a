package types

import (
	"unicode"
	"unicode/utf16"
)

// Text is a message's text or a media caption together with its entities.
// Entity offsets index the UTF-16 view of Value, so all slicing here goes
// through an encoded buffer rather than the raw string.
type Text struct {
	Value    string
	Entities []Entity
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// EntityText returns the substring of the text selected by the entity.
// Out-of-range entities yield an empty string.
func (t Text) EntityText(e Entity) string {
	units := utf16.Encode([]rune(t.Value))
	if e.Offset < 0 || e.Length < 0 || e.Offset+e.Length > len(units) {
		return ""
	}
	return string(utf16.Decode(units[e.Offset : e.Offset+e.Length]))
}

// IsCommand reports whether the text begins with a bot_command entity at
// offset zero. A command anywhere else in the message does not count.
func (t Text) IsCommand() bool {
	return len(t.Entities) > 0 &&
		t.Entities[0].Type == EntityBotCommand &&
		t.Entities[0].Offset == 0
}

// TrimCommand removes the leading command entity and the whitespace that
// follows it, shifting the remaining entities left by the removed amount
// of UTF-16 code units. The receiver must satisfy IsCommand.
func (t Text) TrimCommand() Text {
	units := utf16.Encode([]rune(t.Value))
	cut := t.Entities[0].Length
	if cut > len(units) {
		cut = len(units)
	}

	rest := utf16.Decode(units[cut:])
	i := 0
	for i < len(rest) && unicode.IsSpace(rest[i]) {
		cut += utf16.RuneLen(rest[i])
		i++
	}

	entities := make([]Entity, 0, len(t.Entities)-1)
	for _, e := range t.Entities[1:] {
		e.Offset -= cut
		entities = append(entities, e)
	}

	return Text{
		Value:    string(rest[i:]),
		Entities: entities,
	}
}
