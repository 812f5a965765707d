package smartbattery

import (
	"errors"
	"fmt"
	"testing"
)

type commErr struct{ bus string }

func (e commErr) Error() string { return "nack on " + e.bus }
func (commErr) Kind() ErrorKind { return ErrorKindComm }

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"plain", errors.New("boom"), ErrorKindOther},
		{"kind value", ErrorKindComm, ErrorKindComm},
		{"driver type", commErr{"i2c0"}, ErrorKindComm},
		{"wrapped driver type", fmt.Errorf("read voltage: %w", commErr{"i2c0"}), ErrorKindComm},
		{"status", &StatusError{Code: ErrorCodeBusy}, ErrorKindBatteryStatus},
		{"wrapped status", fmt.Errorf("op: %w", &StatusError{Code: ErrorCodeAccessDenied}), ErrorKindBatteryStatus},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Errorf("%s: got %v want %v", c.name, got, c.want)
		}
	}
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("write mode: %w", &StatusError{Code: ErrorCodeAccessDenied})
	code, ok := CodeOf(err)
	if !ok || code != ErrorCodeAccessDenied {
		t.Fatalf("CodeOf: %v %v", code, ok)
	}
	if !errors.Is(err, &StatusError{Code: ErrorCodeAccessDenied}) {
		t.Fatal("errors.Is on matching code")
	}
	if errors.Is(err, &StatusError{Code: ErrorCodeBusy}) {
		t.Fatal("errors.Is matched a different code")
	}
	if _, ok := CodeOf(ErrorKindComm); ok {
		t.Fatal("comm error carries no code")
	}
}

func TestErrorKindMessages(t *testing.T) {
	for _, k := range []ErrorKind{ErrorKindOther, ErrorKindComm, ErrorKindBatteryStatus} {
		if k.Error() == "" || k.String() == "" {
			t.Fatalf("kind %d has empty text", k)
		}
		var e Error = k
		if e.Kind() != k {
			t.Fatalf("kind %d round trip", k)
		}
	}
}
