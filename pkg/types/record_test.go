package types

import "testing"

func TestRecord_EventName(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"present", Record{"eventName": "Time Rift Expo"}, "Time Rift Expo"},
		{"missing", Record{"venue": "Hall 9"}, ""},
		{"non-string", Record{"eventName": 42.0}, ""},
		{"nil record", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EventName(); got != tt.want {
				t.Errorf("EventName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	orig := Record{"eventName": "Chrono Ball", "seats": 120.0}
	cp := orig.Clone()
	cp["eventName"] = "changed"

	if orig.EventName() != "Chrono Ball" {
		t.Errorf("mutating clone changed original: %q", orig.EventName())
	}
	if Record(nil).Clone() != nil {
		t.Error("clone of nil record should be nil")
	}
}
