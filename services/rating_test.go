package services

import "testing"

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{
			name:    "no ratings yields zero",
			ratings: nil,
			want:    0,
		},
		{
			name:    "single rating",
			ratings: []int{3},
			want:    3.0,
		},
		{
			name:    "two ratings average to a half",
			ratings: []int{4, 5},
			want:    4.5,
		},
		{
			name:    "third rating pulls the mean down",
			ratings: []int{4, 5, 3},
			want:    4.0,
		},
		{
			name:    "repeating decimal rounds to one place",
			ratings: []int{4, 4, 5},
			want:    4.3,
		},
		{
			name:    "exact half rounds up",
			ratings: []int{5, 4, 4, 4}, // mean 4.25
			want:    4.3,
		},
		{
			name:    "all minimum ratings",
			ratings: []int{1, 1, 1},
			want:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageRating(tt.ratings)
			if got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestAverageRatingIdempotent(t *testing.T) {
	ratings := []int{4, 5, 3, 2}

	first := AverageRating(ratings)
	second := AverageRating(ratings)

	if first != second {
		t.Errorf("repeated AverageRating diverged: %v then %v", first, second)
	}
}
