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

// Package log implements leveled, modal execution logs. Loggers write to
// a configurable io.Writer with a compact header of the form
//
//	I190401 06:33:04.606396 transact.go:42 message
//
// where the leading letter is the mode (Info, Warn, Error, Fatal or
// Debug). The mode mask selects which levels a logger emits; Debug is off
// by default and Fatal can never be masked. Discarder() gives tests a
// logger that drops everything.
package log
