package entity_test

import (
	"testing"

	"github.com/bnema/voyage/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewWindowContent(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.NewWindowContent
		wantErr bool
	}{
		{in: "start_page", want: entity.NewWindowStartPage},
		{in: " Homepage ", want: entity.NewWindowHomepage},
		{in: "blank", want: entity.NewWindowBlank},
		{in: "clone_current", want: entity.NewWindowCloneCurrent},
		{in: "", want: entity.NewWindowStartPage},
		{in: "mirror", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entity.ParseNewWindowContent(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, entity.ErrInvalidPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceWindow(t *testing.T) {
	screen := entity.Rect{Width: 1920, Height: 1080}
	size := entity.Size{Width: 800, Height: 600}

	centered := entity.PlaceWindow(size, screen, nil, entity.Point{})
	assert.Equal(t, entity.Rect{X: 560, Y: 240, Width: 800, Height: 600}, centered)

	drop := &entity.Point{X: 500, Y: 300}
	peeled := entity.PlaceWindow(size, screen, drop, entity.Point{X: 100, Y: 20})
	assert.Equal(t, entity.Rect{X: 400, Y: 280, Width: 800, Height: 600}, peeled)

	edge := &entity.Point{X: 1900, Y: 1070}
	clamped := entity.PlaceWindow(size, screen, edge, entity.Point{})
	assert.Equal(t, entity.Rect{X: 1120, Y: 480, Width: 800, Height: 600}, clamped)
}
