package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRatingEmptyList(t *testing.T) {
	g := &Guide{}
	assert.Equal(t, 0.0, g.AverageRating())
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"single", []int{4}, 4.0},
		{"two", []int{4, 5}, 4.5},
		{"rounds down", []int{5, 4, 4}, 4.3},
		{"rounds up", []int{5, 5, 4}, 4.7},
		{"all same", []int{3, 3, 3, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Guide{Ratings: tt.ratings}
			assert.Equal(t, tt.want, g.AverageRating())
		})
	}
}

func TestFullName(t *testing.T) {
	u := &User{FName: "John", LName: "Doe"}
	assert.Equal(t, "John Doe", u.FullName())
}

func TestSanitizedOmitsPassword(t *testing.T) {
	u := &User{FName: "John", LName: "Doe", Email: "john@example.com", Password: "hash"}
	resp := u.Sanitized()
	assert.Equal(t, "john@example.com", resp.Email)
	// UserResponse has no password field at all; spot-check the rest.
	assert.Equal(t, "John", resp.FName)
	assert.Equal(t, "Doe", resp.LName)
}
