package redis

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestExtractKeys(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"plain", []interface{}{"get", "skib:onboarding:wizard:1"}, "skib:onboarding:wizard:1"},
		{"token hidden", []interface{}{"get", "skib:token:refresh:42"}, "skib:token:refresh:***"},
		{"no key", []interface{}{"ping"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := extractKeys(tt.args)
			got := ""
			if len(keys) > 0 {
				got = keys[0]
			}
			if got != tt.want {
				t.Errorf("extractKeys = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandStatus(t *testing.T) {
	if commandStatus(nil) != "success" {
		t.Error("nil error should be success")
	}
	if commandStatus(redis.Nil) != "not_found" {
		t.Error("redis.Nil should be not_found")
	}
	if commandStatus(errors.New("conn refused")) != "error" {
		t.Error("other errors should be error")
	}
}
