// Copyright 2019 The WinFuse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Flag bits control the log header layout.
type Flag int

const (
	Ldate Flag = 1 << iota // the date: 190401
	Ltime                  // the time: 06:33:04
	Lmicroseconds          // microsecond resolution: 06:33:04.606396 (implies Ltime)
	LUTC                   // use UTC rather than the local time zone
	Lmode                  // the single-letter mode: I, W, E, F or D
	Lshortfile             // final file name element and line number: fuse.go:42
	Llongfile              // full file name and line number

	LstdFlags = Lmode | Ldate | Ltime | Lmicroseconds | Lshortfile
)

// Logger writes leveled logs to an io.Writer. The zero value is not
// usable; construct with New. A Logger only emits entries whose mode is
// included in its mode mask (Fatal is never masked).
type Logger struct {
	w    io.Writer
	flag Flag
	mode Mode
}

type option func(*Logger)

// Writer directs log output to w. The writer is used as given; wrap it
// with SynchronizedWriter when the logger is shared across goroutines.
func Writer(w io.Writer) option {
	return func(l *Logger) { l.w = w }
}

// Flags sets the header layout.
func Flags(flag Flag) option {
	return func(l *Logger) { l.flag = flag }
}

// Modes sets the mode mask; entries outside it are suppressed.
func Modes(mode Mode) option {
	return func(l *Logger) { l.mode = mode }
}

// New returns a Logger writing to a synchronized os.Stderr with LstdFlags
// and the default mode mask, overridden by the given options.
func New(options ...option) *Logger {
	l := &Logger{
		w:    DefaultWriter(),
		flag: LstdFlags,
		mode: DefaultMode,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger that drops everything.
func Discarder() *Logger {
	return New(Writer(io.Discard))
}

// Info logs in the manner of fmt.Println.
func (l *Logger) Info(v ...interface{}) { l.log(InfoMode, fmt.Sprintln(v...)) }

// Infof logs in the manner of fmt.Printf; a newline is appended.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(InfoMode, fmt.Sprintf(format+"\n", v...))
}

// Warn logs in the manner of fmt.Println.
func (l *Logger) Warn(v ...interface{}) { l.log(WarnMode, fmt.Sprintln(v...)) }

// Warnf logs in the manner of fmt.Printf; a newline is appended.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(WarnMode, fmt.Sprintf(format+"\n", v...))
}

// Error logs in the manner of fmt.Println.
func (l *Logger) Error(v ...interface{}) { l.log(ErrorMode, fmt.Sprintln(v...)) }

// Errorf logs in the manner of fmt.Printf; a newline is appended.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(ErrorMode, fmt.Sprintf(format+"\n", v...))
}

// Debug logs in the manner of fmt.Println.
func (l *Logger) Debug(v ...interface{}) { l.log(DebugMode, fmt.Sprintln(v...)) }

// Debugf logs in the manner of fmt.Printf; a newline is appended.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(DebugMode, fmt.Sprintf(format+"\n", v...))
}

// Fatal logs in the manner of fmt.Println, then exits.
func (l *Logger) Fatal(v ...interface{}) {
	l.log(FatalMode, fmt.Sprintln(v...))
	os.Exit(255)
}

// Fatalf logs in the manner of fmt.Printf, then exits.
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.log(FatalMode, fmt.Sprintf(format+"\n", v...))
	os.Exit(255)
}

// log is only called from the public mode wrappers above; the caller of
// interest is therefore two frames up.
func (l *Logger) log(mode Mode, data string) {
	if mode&l.mode == DisabledMode && mode != FatalMode {
		return
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file, line = "???", 0
	}

	var buf bytes.Buffer
	l.header(&buf, mode, time.Now(), file, line)
	buf.WriteString(data)
	l.w.Write(buf.Bytes())
}

func (l *Logger) header(buf *bytes.Buffer, mode Mode, t time.Time, file string, line int) {
	if l.flag&Lmode != 0 {
		buf.WriteByte(mode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&Ldate != 0 {
		buf.WriteString(t.Format("060102"))
	}
	if l.flag&(Ltime|Lmicroseconds) != 0 {
		if l.flag&Ldate != 0 {
			buf.WriteByte(' ')
		}
		if l.flag&Lmicroseconds != 0 {
			buf.WriteString(t.Format("15:04:05.000000"))
		} else {
			buf.WriteString(t.Format("15:04:05"))
		}
	}
	buf.WriteByte(' ')
	if l.flag&(Lshortfile|Llongfile) != 0 {
		if l.flag&Lshortfile != 0 {
			file = filepath.Base(file)
		}
		fmt.Fprintf(buf, "%s:%d ", file, line)
	}
}
