package stamp

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-date/internal/config"
	"github.com/tartampluch/go-date/internal/date"
)

const (
	// revisionLayout is the vCard timestamp form of REV (RFC 6350).
	revisionLayout = "20060102T150405Z"

	uidHashLength = 16
	uidDomain     = "go-date"
)

// ICalStamp returns a DTSTAMP property holding the clock's current instant in UTC.
func ICalStamp(c date.Clock) *ical.Prop {
	prop := ical.NewProp(config.PropDTStamp)
	prop.SetDateTime(c.Now().UTC())
	return prop
}

// Calendar builds a VCALENDAR holding one event that starts at the clock's
// current instant. The same clock and name always yield the same UID.
func Calendar(c date.Clock, name string) *ical.Calendar {
	if name == "" {
		name = config.DefaultCalName
	}
	now := c.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, name)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uid(name, now))
	event.Props.SetText(ical.PropSummary, name)
	event.Props.Set(ICalStamp(c))
	event.Props.SetDateTime(ical.PropDateTimeStart, now.UTC())

	cal.Children = append(cal.Children, event.Component)
	return cal
}

// EncodeCalendar writes cal in iCalendar format.
func EncodeCalendar(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompStamp,
			config.LogKeyError, err,
		)
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

// VCardRevision sets the REV field of card to the clock's current instant.
func VCardRevision(card vcard.Card, c date.Clock) {
	card.SetValue(vcard.FieldRevision, c.Now().UTC().Format(revisionLayout))
}

// Card builds a minimal vCard 4.0 for name, revised at the clock's current instant.
func Card(c date.Clock, name string) vcard.Card {
	if name == "" {
		name = config.DefaultCardName
	}
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldFormattedName, name)
	card.SetValue(vcard.FieldUID, uid(name, c.Now()))
	VCardRevision(card, c)
	return card
}

// EncodeCard writes card in vCard format.
func EncodeCard(w io.Writer, card vcard.Card) error {
	if err := vcard.NewEncoder(w).Encode(card); err != nil {
		slog.Error(config.ErrVCardEncode,
			config.LogKeyComponent, config.CompStamp,
			config.LogKeyError, err,
		)
		return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
	}
	return nil
}

// uid derives a stable identifier from name and instant.
func uid(name string, t time.Time) string {
	hash := sha256.Sum256([]byte(name + "|" + t.UTC().Format(time.RFC3339Nano)))
	return fmt.Sprintf("%x@%s", hash[:uidHashLength], uidDomain)
}
