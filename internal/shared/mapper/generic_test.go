package mapper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapSlice(t *testing.T) {
	tests := []struct {
		name  string
		input []int
		want  []string
	}{
		{
			name:  "nil input returns nil",
			input: nil,
			want:  nil,
		},
		{
			name:  "empty slice returns empty slice",
			input: []int{},
			want:  []string{},
		},
		{
			name:  "maps every element",
			input: []int{1, 2, 3},
			want:  []string{"n1", "n2", "n3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapSlice(tt.input, func(i int) string { return fmt.Sprintf("n%d", i) })

			if tt.input == nil {
				if got != nil {
					t.Errorf("MapSlice() = %v, want nil", got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MapSlice() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MapSlice()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMapSliceWithError(t *testing.T) {
	tests := []struct {
		name    string
		input   []int
		mapFunc func(int) (string, error)
		want    []string
		wantErr bool
	}{
		{
			name:    "nil input returns nil",
			input:   nil,
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("%d", i), nil },
			want:    nil,
		},
		{
			name:    "successful mapping",
			input:   []int{1, 2, 3},
			mapFunc: func(i int) (string, error) { return fmt.Sprintf("num_%d", i), nil },
			want:    []string{"num_1", "num_2", "num_3"},
		},
		{
			name:  "stops at first error",
			input: []int{1, 2, 3},
			mapFunc: func(i int) (string, error) {
				if i == 2 {
					return "", errors.New("mapping failed")
				}
				return fmt.Sprintf("num_%d", i), nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapSliceWithError(tt.input, tt.mapFunc)

			if tt.wantErr {
				if err == nil {
					t.Fatal("MapSliceWithError() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("MapSliceWithError() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MapSliceWithError() length = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("MapSliceWithError()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMapSlicePtrWithID(t *testing.T) {
	type record struct {
		ID    uint
		Value int
	}
	type view struct {
		Result string
	}

	intPtr := func(r record) *record { return &r }

	t.Run("skips nil inputs and nil outputs", func(t *testing.T) {
		input := []*record{
			intPtr(record{ID: 1, Value: 1}),
			nil,
			intPtr(record{ID: 2, Value: -1}),
			intPtr(record{ID: 3, Value: 3}),
		}

		got, err := MapSlicePtrWithID(input,
			func(r *record) (*view, error) {
				if r.Value < 0 {
					return nil, nil
				}
				return &view{Result: fmt.Sprintf("v%d", r.Value)}, nil
			},
			func(r *record) uint { return r.ID },
		)
		if err != nil {
			t.Fatalf("MapSlicePtrWithID() unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("MapSlicePtrWithID() length = %d, want 2", len(got))
		}
		if got[0].Result != "v1" || got[1].Result != "v3" {
			t.Errorf("MapSlicePtrWithID() = [%v %v], want [v1 v3]", got[0].Result, got[1].Result)
		}
	})

	t.Run("wraps error with failing ID", func(t *testing.T) {
		input := []*record{intPtr(record{ID: 42, Value: 1})}

		_, err := MapSlicePtrWithID(input,
			func(r *record) (*view, error) { return nil, errors.New("boom") },
			func(r *record) uint { return r.ID },
		)
		if err == nil {
			t.Fatal("MapSlicePtrWithID() expected error, got nil")
		}
		if !strings.Contains(err.Error(), "42") {
			t.Errorf("MapSlicePtrWithID() error = %v, want it to name ID 42", err)
		}
	})

	t.Run("nil input returns nil", func(t *testing.T) {
		got, err := MapSlicePtrWithID(nil,
			func(r *record) (*view, error) { return &view{}, nil },
			func(r *record) uint { return r.ID },
		)
		if err != nil {
			t.Fatalf("MapSlicePtrWithID() unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("MapSlicePtrWithID() = %v, want nil", got)
		}
	})
}
