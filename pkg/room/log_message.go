package room

import (
	"texasholdem-server/pkg/poker/texasholdem"
)

const logMessageLimit = 25

// addLogMessages keeps the most recent events for clients that connect mid-hand
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(events []*texasholdem.Event) {
	m := append(d.logMessages, events...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
