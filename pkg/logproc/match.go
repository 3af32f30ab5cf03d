package logproc

import (
	"fmt"
	"strings"
	"time"

	"github.com/ganttflow/ganttflow/pkg/tui"
)

// Connection is one matched network connection interval.
type Connection struct {
	Name  string
	Start time.Time
	End   time.Time
}

// connState accumulates events for one connection identifier.
type connState struct {
	added   []Entry
	removed []Entry
}

// logDateLayouts are tried in order. Day-first comes before month-first
// because ambiguous slash dates are more often international.
var logDateLayouts = []string{
	"2/1/2006",   // DD/MM/YYYY
	"1/2/2006",   // MM/DD/YYYY
	"2006-01-02", // ISO
	"2-1-2006",   // DD-MM-YYYY
	"1-2-2006",   // MM-DD-YYYY
	"2.1.2006",   // DD.MM.YYYY
}

// parseLogTimestamp combines a date and a time string. The time may use
// '.', ':' or '-' as separators. An empty date defaults to the epoch
// date so time-only logs still order correctly.
func parseLogTimestamp(dateStr, timeStr string) (time.Time, bool) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, false
	}
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		dateStr = "01/01/1970"
	}

	normalized := strings.NewReplacer(".", ":", "-", ":").Replace(timeStr)
	for _, layout := range logDateLayouts {
		for _, timeLayout := range []string{"15:04:05", "15:04:05.999999"} {
			t, err := time.Parse(layout+" "+timeLayout, dateStr+" "+normalized)
			if err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// connectionID keys a connection on its address pair.
func connectionID(local, remote string) string {
	return strings.TrimSpace(local) + "," + strings.TrimSpace(remote)
}

// MatchConnections pairs Added and Removed events per connection
// identifier. Identifier reuse (an Added event after Removed events)
// closes the previous connection and starts a new one. Connections cut
// off at either end of the log keep whichever timestamps exist.
func MatchConnections(entries []Entry, log *tui.Logger) []Connection {
	log.Debugf("matching connection events from %d log entries", len(entries))

	var result []Connection
	active := map[string]*connState{}
	var order []string // map iteration order is random; keep first appearance

	for _, e := range entries {
		if e.LocalAddr == "" || e.RemoteAddr == "" {
			log.Debugf("skipping entry with missing address fields")
			continue
		}
		id := connectionID(e.LocalAddr, e.RemoteAddr)
		state, ok := active[id]
		if !ok {
			state = &connState{}
			active[id] = state
			order = append(order, id)
		}

		switch e.Action {
		case "Added":
			if len(state.removed) > 0 {
				// Identifier reuse: close out the previous connection.
				if c, ok := buildConnection(id, state); ok {
					result = append(result, c)
					log.Debugf("completed connection (reuse detected): %s", c.Name)
				}
				state.added = state.added[:0]
				state.removed = state.removed[:0]
			}
			state.added = append(state.added, e)
		case "Removed":
			state.removed = append(state.removed, e)
		}
	}

	log.Debugf("processing %d remaining active connections", len(active))
	for _, id := range order {
		if c, ok := buildConnection(id, active[id]); ok {
			result = append(result, c)
			log.Debugf("completed connection: %s", c.Name)
		}
	}

	log.Debugf("matched %d total connections", len(result))
	return result
}

// buildConnection derives one Connection from accumulated events:
// earliest Added timestamp starts it, latest Removed timestamp ends it,
// with cutoff fallbacks when one side is missing.
func buildConnection(id string, state *connState) (Connection, bool) {
	var start, end time.Time
	process := "Unknown"

	for _, e := range state.added {
		if t, ok := parseLogTimestamp(e.Date, e.Time); ok {
			if start.IsZero() || t.Before(start) {
				start = t
			}
			if p := strings.TrimSpace(e.Process); p != "" && p != "Unknown" {
				process = p
			}
		}
	}
	for _, e := range state.removed {
		if t, ok := parseLogTimestamp(e.Date, e.Time); ok {
			if end.IsZero() || t.After(end) {
				end = t
			}
			if process == "Unknown" {
				if p := strings.TrimSpace(e.Process); p != "" && p != "Unknown" {
					process = p
				}
			}
		}
	}

	// Connection started before logging began: earliest Removed
	// event stands in for the start.
	if start.IsZero() && !end.IsZero() {
		for _, e := range state.removed {
			if t, ok := parseLogTimestamp(e.Date, e.Time); ok {
				if start.IsZero() || t.Before(start) {
					start = t
				}
			}
		}
	}

	if start.IsZero() && end.IsZero() {
		return Connection{}, false
	}
	if start.IsZero() {
		start = end
	}
	if end.IsZero() {
		end = start
	}

	protocol := "TCP"
	if len(state.added) > 0 && state.added[0].Protocol != "" {
		protocol = state.added[0].Protocol
	} else if len(state.removed) > 0 && state.removed[0].Protocol != "" {
		protocol = state.removed[0].Protocol
	}

	local, remote := id, ""
	if i := strings.IndexByte(id, ','); i >= 0 {
		local, remote = id[:i], id[i+1:]
	}

	return Connection{
		Name:  fmt.Sprintf("%s (%s): %s -> %s", process, protocol, local, remote),
		Start: start,
		End:   end,
	}, true
}
