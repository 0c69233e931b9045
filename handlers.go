// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package execlog

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/swiss"

	"github.com/execlog/execlog/model"
	"github.com/execlog/execlog/xmlstream"
)

// elementHandler builds or mutates result-tree nodes for one tag.
// open runs on the element's Open event with only attributes
// available; close runs on its Close event with the text complete.
type elementHandler interface {
	open(h *treeHandler, e *xmlstream.Element) error
	close(h *treeHandler, e *xmlstream.Element) error
}

// treeHandler consumes the filtered event stream and populates a
// Result. The handler table is a closed, enumerable dispatch from tag
// name to node builder; tags outside the table are ignored together
// with their entire subtree, so documents from newer producers degrade
// instead of failing.
type treeHandler struct {
	result   *model.Result
	handlers swiss.Map[string, elementHandler]
	stack    []any
	ignore   int
	sawRoot  bool
}

func newTreeHandler(result *model.Result) *treeHandler {
	h := &treeHandler{result: result}
	h.handlers.Init(24)
	h.handlers.Put("robot", robotHandler{})
	h.handlers.Put("suite", suiteHandler{})
	h.handlers.Put("test", testHandler{})
	h.handlers.Put("kw", kwHandler{})
	for _, tag := range []string{"for", "while", "if", "try", "iter", "branch"} {
		h.handlers.Put(tag, controlHandler{})
	}
	h.handlers.Put("status", statusHandler{})
	h.handlers.Put("msg", msgHandler{})
	h.handlers.Put("doc", docHandler{})
	h.handlers.Put("tag", tagHandler{})
	h.handlers.Put("arg", argHandler{})
	h.handlers.Put("var", varHandler{})
	h.handlers.Put("meta", metaHandler{})
	h.handlers.Put("item", metaHandler{})
	h.handlers.Put("timeout", timeoutHandler{})
	h.handlers.Put("errors", errorsHandler{})
	// Wrapper elements used by older document versions; their children
	// apply to whatever node is currently open.
	for _, tag := range []string{"tags", "args", "arguments", "metadata"} {
		h.handlers.Put(tag, passHandler{})
	}
	return h
}

func (h *treeHandler) start(e *xmlstream.Element) error {
	if h.ignore > 0 {
		h.ignore++
		return nil
	}
	if !h.sawRoot {
		if e.Tag != "robot" {
			return errors.Newf("incompatible root element '%s'", e.Tag)
		}
		h.sawRoot = true
	}
	hd, ok := h.handlers.Get(e.Tag)
	if !ok {
		h.ignore = 1
		return nil
	}
	return hd.open(h, e)
}

func (h *treeHandler) end(e *xmlstream.Element) error {
	if h.ignore > 0 {
		h.ignore--
		return nil
	}
	hd, ok := h.handlers.Get(e.Tag)
	if !ok {
		return nil
	}
	return hd.close(h, e)
}

func (h *treeHandler) push(n any) {
	h.stack = append(h.stack, n)
}

func (h *treeHandler) pop() {
	h.stack[len(h.stack)-1] = nil
	h.stack = h.stack[:len(h.stack)-1]
}

func (h *treeHandler) top() any {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

// appendBody attaches an item to the body of the currently open node,
// if it can hold one.
func (h *treeHandler) appendBody(item model.BodyItem) bool {
	switch p := h.top().(type) {
	case *model.Test:
		p.Body = append(p.Body, item)
	case *model.Keyword:
		p.Body = append(p.Body, item)
	case *model.Control:
		p.Body = append(p.Body, item)
	default:
		return false
	}
	return true
}

// errorsFrame marks that subsequent messages are document level
// execution errors.
type errorsFrame struct{}

type robotHandler struct{}

func (robotHandler) open(h *treeHandler, e *xmlstream.Element) error {
	h.result.Generator = e.Attr("generator")
	h.result.Generated = parseTimestamp(e.Attr("generated"))
	switch e.Attr("rpa") {
	case "true":
		h.result.SetRPA(true)
	case "false":
		h.result.SetRPA(false)
	}
	h.push(h.result)
	return nil
}

func (robotHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

type suiteHandler struct{}

func (suiteHandler) open(h *treeHandler, e *xmlstream.Element) error {
	var s *model.Suite
	switch p := h.top().(type) {
	case *model.Result:
		s = p.Suite
	case *model.Suite:
		s = &model.Suite{}
		p.Suites = append(p.Suites, s)
	default:
		h.ignore = 1
		return nil
	}
	s.Name = e.Attr("name")
	s.Source = e.Attr("source")
	h.push(s)
	return nil
}

func (suiteHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

type testHandler struct{}

func (testHandler) open(h *treeHandler, e *xmlstream.Element) error {
	p, ok := h.top().(*model.Suite)
	if !ok {
		h.ignore = 1
		return nil
	}
	t := &model.Test{Name: e.Attr("name")}
	if line := e.Attr("line"); line != "" {
		t.Line, _ = strconv.Atoi(line)
	}
	p.Tests = append(p.Tests, t)
	h.push(t)
	return nil
}

func (testHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

type kwHandler struct{}

func (kwHandler) open(h *treeHandler, e *xmlstream.Element) error {
	k := &model.Keyword{
		Name:  e.Attr("name"),
		Owner: ownerOf(e),
		Type:  model.KeywordType,
	}
	switch e.Attr("type") {
	case "SETUP":
		k.Type = model.SetupType
	case "TEARDOWN":
		k.Type = model.TeardownType
	}
	switch p := h.top().(type) {
	case *model.Suite:
		switch k.Type {
		case model.SetupType:
			p.Setup = k
		case model.TeardownType:
			p.Teardown = k
		}
	default:
		h.appendBody(k)
	}
	h.push(k)
	return nil
}

func (kwHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

type controlHandler struct{}

func (controlHandler) open(h *treeHandler, e *xmlstream.Element) error {
	c := &model.Control{
		Condition: e.Attr("condition"),
		Flavor:    e.Attr("flavor"),
	}
	switch e.Tag {
	case "for":
		c.Kind = "FOR"
	case "while":
		c.Kind = "WHILE"
	case "if":
		c.Kind = "IF"
	case "try":
		c.Kind = "TRY"
	case "iter":
		c.Kind = "ITERATION"
	case "branch":
		c.Kind = "BRANCH"
		c.Type = e.Attr("type")
	}
	h.appendBody(c)
	h.push(c)
	return nil
}

func (controlHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

type statusHandler struct{}

func (statusHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (statusHandler) close(h *treeHandler, e *xmlstream.Element) error {
	st := model.Status{
		Status:  e.Attr("status"),
		Message: e.Text(),
		Start:   parseStart(e),
		Elapsed: parseElapsed(e),
	}
	switch p := h.top().(type) {
	case *model.Suite:
		p.Status = st
	case *model.Test:
		p.Status = st
	case *model.Keyword:
		p.Status = st
	case *model.Control:
		p.Status = st
	}
	return nil
}

type msgHandler struct{}

func (msgHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (msgHandler) close(h *treeHandler, e *xmlstream.Element) error {
	m := &model.Message{
		Timestamp: parseMsgTime(e),
		Level:     e.Attr("level"),
		HTML:      e.Attr("html") == "true",
		Text:      e.Text(),
	}
	if _, ok := h.top().(errorsFrame); ok {
		h.result.Errors = append(h.result.Errors, m)
		return nil
	}
	h.appendBody(m)
	return nil
}

type docHandler struct{}

func (docHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (docHandler) close(h *treeHandler, e *xmlstream.Element) error {
	switch p := h.top().(type) {
	case *model.Suite:
		p.Doc = e.Text()
	case *model.Test:
		p.Doc = e.Text()
	case *model.Keyword:
		p.Doc = e.Text()
	}
	return nil
}

type tagHandler struct{}

func (tagHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (tagHandler) close(h *treeHandler, e *xmlstream.Element) error {
	switch p := h.top().(type) {
	case *model.Test:
		p.Tags = append(p.Tags, e.Text())
	case *model.Keyword:
		p.Tags = append(p.Tags, e.Text())
	}
	return nil
}

type argHandler struct{}

func (argHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (argHandler) close(h *treeHandler, e *xmlstream.Element) error {
	if p, ok := h.top().(*model.Keyword); ok {
		p.Args = append(p.Args, e.Text())
	}
	return nil
}

type varHandler struct{}

func (varHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (varHandler) close(h *treeHandler, e *xmlstream.Element) error {
	switch p := h.top().(type) {
	case *model.Keyword:
		p.Vars = append(p.Vars, e.Text())
	case *model.Control:
		p.Variables = append(p.Variables, e.Text())
	}
	return nil
}

type metaHandler struct{}

func (metaHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (metaHandler) close(h *treeHandler, e *xmlstream.Element) error {
	if p, ok := h.top().(*model.Suite); ok {
		if p.Metadata == nil {
			p.Metadata = make(map[string]string)
		}
		p.Metadata[e.Attr("name")] = e.Text()
	}
	return nil
}

type timeoutHandler struct{}

func (timeoutHandler) open(h *treeHandler, e *xmlstream.Element) error { return nil }

func (timeoutHandler) close(h *treeHandler, e *xmlstream.Element) error {
	switch p := h.top().(type) {
	case *model.Test:
		p.Timeout = e.Attr("value")
	case *model.Keyword:
		p.Timeout = e.Attr("value")
	}
	return nil
}

type errorsHandler struct{}

func (errorsHandler) open(h *treeHandler, e *xmlstream.Element) error {
	h.push(errorsFrame{})
	return nil
}

func (errorsHandler) close(h *treeHandler, e *xmlstream.Element) error {
	h.pop()
	return nil
}

// passHandler is for wrapper elements whose children apply to the
// enclosing node.
type passHandler struct{}

func (passHandler) open(h *treeHandler, e *xmlstream.Element) error  { return nil }
func (passHandler) close(h *treeHandler, e *xmlstream.Element) error { return nil }

// Timestamp layouts: current documents use ISO 8601 with microseconds,
// old ones "YYYYMMDD HH:MM:SS.mmm".
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"20060102 15:04:05.000",
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseStart(e *xmlstream.Element) time.Time {
	if v := e.Attr("start"); v != "" {
		return parseTimestamp(v)
	}
	return parseTimestamp(e.Attr("starttime"))
}

func parseMsgTime(e *xmlstream.Element) time.Time {
	if v := e.Attr("time"); v != "" {
		return parseTimestamp(v)
	}
	return parseTimestamp(e.Attr("timestamp"))
}

func parseElapsed(e *xmlstream.Element) time.Duration {
	if v := e.Attr("elapsed"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
		return 0
	}
	start := parseTimestamp(e.Attr("starttime"))
	end := parseTimestamp(e.Attr("endtime"))
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return end.Sub(start)
}
