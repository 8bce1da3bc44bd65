package logger

import "testing"

func TestInit(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"console debug", "debug", "console", false},
		{"json info", "info", "json", false},
		{"invalid level", "verbose", "console", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Init(tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Init returned error: %v", err)
			}
			if log == nil {
				t.Fatal("Init returned nil logger")
			}
		})
	}
}
