// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

// Logger defines an interface for writing log messages.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLogger logs to the Go stdlib logs.
type DefaultLogger struct{}

// Infof implements the Logger.Infof interface.
func (DefaultLogger) Infof(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

// Errorf implements the Logger.Errorf interface.
func (DefaultLogger) Errorf(format string, args ...interface{}) {
	_ = log.Output(2, fmt.Sprintf(format, args...))
}

// Options configures one ingestion. The zero value is a valid
// configuration that keeps all execution detail.
type Options struct {
	// OmitDetail drops step-level keyword and control-structure
	// subtrees while parsing, keeping only what is needed to determine
	// suite and test outcomes. Teardown subtrees are kept through the
	// parse so their failures can be propagated, then stripped from
	// the built tree.
	OmitDetail bool

	// Flatten selects container subtrees whose contents are collapsed
	// into a single summary status message, keeping log messages.
	// Ignored when OmitDetail is set.
	Flatten []FlattenSpec

	// Logger is used for non-fatal notes encountered while parsing.
	Logger Logger

	// ParseLatency, if set, observes the wall time of each ingestion
	// in seconds.
	ParseLatency prometheus.Histogram
}

// EnsureDefaults ensures that the default values for all options are
// set if a valid value was not already specified. Returns the options
// for chaining.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	return o
}
