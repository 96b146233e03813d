package alternatives

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one registered alternative: a target path and the priority it
// competes with. Records are immutable values; identity within a group is
// the target alone.
type Record struct {
	Target   string
	Priority int
}

// String renders the record in its on-disk form, "<target> <priority>".
func (r Record) String() string {
	return r.Target + " " + strconv.Itoa(r.Priority)
}

// parseRecord parses one database line of the form "<target> <priority>".
// The priority is everything after the last space, so targets containing
// spaces round-trip.
func parseRecord(line string) (Record, error) {
	idx := strings.LastIndexByte(line, ' ')
	if idx < 0 {
		return Record{}, fmt.Errorf("missing separator in %q", line)
	}

	target := line[:idx]
	if target == "" {
		return Record{}, fmt.Errorf("empty target in %q", line)
	}

	priority, err := strconv.Atoi(line[idx+1:])
	if err != nil {
		return Record{}, fmt.Errorf("invalid priority %q: %w", line[idx+1:], err)
	}

	return Record{Target: target, Priority: priority}, nil
}
