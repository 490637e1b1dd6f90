package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.pageSize))
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationOptions{Page: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, PaginationOptions{Page: 3, PageSize: 10}.Offset())
}

func TestDistanceMeters(t *testing.T) {
	dubai := GeoPoint{Latitude: 25.2048, Longitude: 55.2708}
	abuDhabi := GeoPoint{Latitude: 24.4539, Longitude: 54.3773}

	d := dubai.DistanceMeters(abuDhabi)
	// roughly 123 km between the two city centers
	assert.InDelta(t, 123000, d, 5000)
	assert.Zero(t, dubai.DistanceMeters(dubai))
}

func TestGeoPointIsZero(t *testing.T) {
	assert.True(t, GeoPoint{}.IsZero())
	assert.False(t, GeoPoint{Latitude: 1}.IsZero())
}
