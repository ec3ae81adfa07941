package ppm

import (
	"math/rand"
	"testing"

	perrors "github.com/matzehuels/ppmedit/pkg/errors"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		wantRows int
		wantCols int
	}{
		{"nil", nil, 0, 0},
		{"empty", Grid{}, 0, 0},
		{"one pixel", Grid{{1, 2, 3}}, 1, 1},
		{"two by three", Grid{{1, 2, 3, 4, 5, 6}, {1, 2, 3, 4, 5, 6}, {1, 2, 3, 4, 5, 6}}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.grid.Rows(); got != tt.wantRows {
				t.Errorf("Rows() = %d, want %d", got, tt.wantRows)
			}
			if got := tt.grid.Cols(); got != tt.wantCols {
				t.Errorf("Cols() = %d, want %d", got, tt.wantCols)
			}
		})
	}
}

func TestGridClone(t *testing.T) {
	if Grid(nil).Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}

	g := Grid{{1, 2, 3}, {4, 5, 6}}
	c := g.Clone()
	c[0][0] = 99
	if g[0][0] != 1 {
		t.Error("Clone() shares backing arrays with the original")
	}
}

func TestGridEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Grid
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs empty", nil, Grid{}, false},
		{"both empty", Grid{}, Grid{}, true},
		{"same values", Grid{{1, 2, 3}}, Grid{{1, 2, 3}}, true},
		{"different value", Grid{{1, 2, 3}}, Grid{{1, 2, 4}}, false},
		{"different rows", Grid{{1, 2, 3}}, Grid{{1, 2, 3}, {1, 2, 3}}, false},
		{"different width", Grid{{1, 2, 3}}, Grid{{1, 2, 3, 4, 5, 6}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		grid     Grid
		wantCode perrors.Code
	}{
		{"valid", Grid{{1, 2, 3}, {4, 5, 6}}, ""},
		{"empty grid", Grid{}, ""},
		{"zero width rows", Grid{{}, {}}, ""},
		{"nil", nil, perrors.ErrCodeNullArgument},
		{"invalid width", Grid{{1, 2, 3, 4}}, perrors.ErrCodeShapeInvalid},
		{"jagged", Grid{{1, 2, 3}, {4, 5}}, perrors.ErrCodeJagged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.grid)
			if got := perrors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err = %v)", got, tt.wantCode, err)
			}
		})
	}
}
