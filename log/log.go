package log

import (
	"log"
	"os"
)

// Уровни сообщений фильтра CUPS. Планировщик разбирает префикс каждой
// строки stderr, поэтому формат менять нельзя.
const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARNING"
	ERROR = "ERROR"
)

var Stdlog, Errlog *log.Logger

func init() {
	// The scheduler owns timestamps; the filter writes bare prefixed lines.
	Stdlog = log.New(os.Stderr, "", 0)
	Errlog = log.New(os.Stderr, "", 0)
}

// Debugf writes a DEBUG: line to the scheduler log.
func Debugf(format string, v ...interface{}) {
	Stdlog.Printf("DEBUG: "+format, v...)
}

// Infof writes an INFO: line to the scheduler log.
func Infof(format string, v ...interface{}) {
	Stdlog.Printf("INFO: "+format, v...)
}

// Errorf writes an ERROR: line to the scheduler log.
func Errorf(format string, v ...interface{}) {
	Errlog.Printf("ERROR: "+format, v...)
}

// Page announces a page to the scheduler, with its copy count.
func Page(page, copies int) {
	Stdlog.Printf("PAGE: %d %d", page, copies)
}

// LogMessage writes a message with an explicit level prefix.
func LogMessage(level, message string) {
	if level == ERROR {
		Errlog.Printf("%s: %s", level, message)
		return
	}
	Stdlog.Printf("%s: %s", level, message)
}

// Attr logs one configuration attribute, aligned for readability in the
// job log.
func Attr(name string, value interface{}) {
	Debugf("%20s = %v", name, value)
}
