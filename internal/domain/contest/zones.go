package contest

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	// embed the IANA database so zone lookups do not depend on the host
	_ "time/tzdata"
)

// ZoneTable resolves IANA zone names.
type ZoneTable interface {
	Location(name string) (*time.Location, error)
}

// IANAZones is a ZoneTable backed by the Go time zone database.
type IANAZones struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func NewIANAZones() *IANAZones {
	return &IANAZones{cache: make(map[string]*time.Location)}
}

func (z *IANAZones) Location(name string) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC and "Local" to the host zone
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}

	z.mu.RLock()
	loc, ok := z.cache[name]
	z.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}

	z.mu.Lock()
	z.cache[name] = loc
	z.mu.Unlock()

	return loc, nil
}

// Offset is a UTC offset in seconds east of UTC.
type Offset int

// OffsetAt returns the offset the named zone holds at the given instant.
func OffsetAt(zones ZoneTable, name string, at time.Time) (Offset, error) {
	loc, err := zones.Location(name)
	if err != nil {
		return 0, err
	}
	_, secs := at.In(loc).Zone()
	return Offset(secs), nil
}

// String formats the offset as ±hhmm.
func (o Offset) String() string {
	sign := '+'
	secs := int(o)
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return fmt.Sprintf("%c%02d%02d", sign, secs/3600, (secs%3600)/60)
}

func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), int(o))
}

// ParseOffset parses the ±hhmm form produced by Offset.String.
func ParseOffset(value string) (Offset, error) {
	if len(value) != 5 || (value[0] != '+' && value[0] != '-') {
		return 0, fmt.Errorf("invalid offset %q", value)
	}
	hours, err := strconv.Atoi(value[1:3])
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", value)
	}
	minutes, err := strconv.Atoi(value[3:5])
	if err != nil || minutes > 59 || hours > 14 {
		return 0, fmt.Errorf("invalid offset %q", value)
	}
	secs := hours*3600 + minutes*60
	if value[0] == '-' {
		secs = -secs
	}
	return Offset(secs), nil
}
