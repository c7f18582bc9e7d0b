package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(logrus.DebugLevel))

	l.WithFields(Fields{"opcode": "D3"}).Errorf("unknown opcode")
	out := buf.String()
	if !strings.Contains(out, "level=error") || !strings.Contains(out, "opcode=D3") {
		t.Errorf("expected error entry with opcode field, got %q", out)
	}

	buf.Reset()
	l.Debugf("step %d", 1)
	if !strings.Contains(buf.String(), "step 1") {
		t.Errorf("expected debug entry, got %q", buf.String())
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf))

	l.Debugf("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithJSON())

	l.Infof("hello")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON entry, got %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	l.Infof("nothing")
	if l.WithFields(Fields{"a": 1}) == nil {
		t.Error("expected WithFields to return a logger")
	}
}
