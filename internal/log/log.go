// Implements a global leveled log shared by the codec packages.
// The default level keeps the library completely silent; consumers
// debugging a decode pass can raise it to trace schema registrations
// and per field decisions.
package log

import (
	"github.com/sirupsen/logrus"
)

// Indicates a log level, only the provided global variable can be
// used to change it.
type Logging uint

// Global variable that represents the level. This allows use between
// packages. Default level is FATAL so the library stays quiet.
var Level Logging = FATAL

const (
	FATAL Logging = iota // [X] Logs only unrecoverable problems
	ERROR                // [E] Logs failed extractions and schema problems
	INFO                 // [I] Logs schema registrations
	ALL                  // [-] Logs every single field decision
)

// Backend for all helpers. Gating happens through Level, so the
// backend itself accepts everything down to debug.
var out *logrus.Logger = logrus.New()

func init() {
	out.SetLevel(logrus.DebugLevel)
}

// Logs in any level [*]
//
// Notifies any generic library message.
func Notice(msg string) {
	out.Infof("[*] Notification: %s", msg)
}

// Requires FATAL
//
// Generic fatal error.
func Fatal(msg string, err error) {
	if Level < FATAL {
		return
	}
	out.Fatalf("[X] Fatal problem in %s due to %s", msg, err)
}

// Requires ERROR or higher
//
// Read past the end of a buffer during an extraction.
func Underrun(cursor int, length int, size int) {
	if Level < ERROR {
		return
	}
	out.Errorf(
		"[E] Read of %d bytes at offset %d passes the end of a %d byte buffer",
		length,
		cursor,
		size,
	)
}

// Requires INFO or higher
//
// New bit layout registered for a type.
func Schema(name string, fields int) {
	if Level < INFO {
		return
	}
	out.Infof("[I] Registered bit layout for %s with %d fields", name, fields)
}

// Requires ALL
//
// Field skipped because its presence bit was not enabled.
func Skip(flag uint16) {
	if Level < ALL {
		return
	}
	out.Debugf("[-] Field with flag %#x not present, skipping!", flag)
}
