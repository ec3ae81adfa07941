package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "images/cat.ppm", false},
		{"absolute", "/tmp/cat.ppm", false},
		{"parent dir allowed", "../cat.ppm", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "cat\x00.ppm", true},
		{"control char", "cat\x01.ppm", true},
		{"newline", "cat\n.ppm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePPMFilename(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		role    string
		wantErr bool
		wantMsg string
	}{
		{"valid input", "in.ppm", "input", false, ""},
		{"valid nested output", "out/dir/result.ppm", "output", false, ""},
		{"wrong input extension", "in.png", "input", true, "Invalid input file extension"},
		{"wrong output extension", "out.txt", "output", true, "Invalid output file extension"},
		{"uppercase extension", "in.PPM", "input", true, "Invalid input file extension"},
		{"no extension", "in", "input", true, "Invalid input file extension"},
		{"empty", "", "output", true, "path cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePPMFilename(tt.path, tt.role)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePPMFilename(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
			if got := UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
