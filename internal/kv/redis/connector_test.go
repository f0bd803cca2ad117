package redis

import (
	"testing"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/logger"
)

func validOptions() ConnectOptions {
	return ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: 30 * time.Second,
		RetryInterval:  2 * time.Second,
		MaxWait:        10 * time.Second,
		PingTimeout:    5 * time.Second,
		WarnThreshold:  3,
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *ConnectOptions)
		wantErr bool
	}{
		{"valid", func(o *ConnectOptions) {}, false},
		{"empty addr", func(o *ConnectOptions) { o.Addr = "" }, true},
		{"zero connect timeout", func(o *ConnectOptions) { o.ConnectTimeout = 0 }, true},
		{"zero retry interval", func(o *ConnectOptions) { o.RetryInterval = 0 }, true},
		{"zero max wait", func(o *ConnectOptions) { o.MaxWait = 0 }, true},
		{"zero ping timeout", func(o *ConnectOptions) { o.PingTimeout = 0 }, true},
		{"negative warn threshold", func(o *ConnectOptions) { o.WarnThreshold = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOptions()
			tt.mutate(&o)
			err := o.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnectRejectsInvalidOptions(t *testing.T) {
	o := validOptions()
	o.PingTimeout = 0
	if _, err := Connect(o, logger.NewNop()); err == nil {
		t.Error("Connect() with invalid options should fail before dialing")
	}
}

func TestNextBackoff(t *testing.T) {
	max := 10 * time.Second
	wait := 2 * time.Second

	expected := []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second, 10 * time.Second}
	for i, want := range expected {
		wait = nextBackoff(wait, max)
		if wait != want {
			t.Errorf("step %d: nextBackoff() = %v, want %v", i, wait, want)
		}
	}
}
