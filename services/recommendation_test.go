package services

import (
	"math"
	"testing"

	"vrent/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPearsonCorrelation(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{
			name: "identical rows correlate perfectly",
			a:    []float64{1, 2, 3},
			b:    []float64{1, 2, 3},
			want: 1,
		},
		{
			name: "inverse rows correlate negatively",
			a:    []float64{1, 2, 3},
			b:    []float64{3, 2, 1},
			want: -1,
		},
		{
			name: "constant row carries no signal",
			a:    []float64{2, 2, 2},
			b:    []float64{1, 3, 5},
			want: 0,
		},
		{
			name: "all-zero row carries no signal",
			a:    []float64{0, 0, 0},
			b:    []float64{1, 3, 5},
			want: 0,
		},
		{
			name: "length mismatch yields zero",
			a:    []float64{1, 2},
			b:    []float64{1, 2, 3},
			want: 0,
		},
		{
			name: "empty rows yield zero",
			a:    nil,
			b:    nil,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PearsonCorrelation(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("PearsonCorrelation(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBuildRatingMatrix(t *testing.T) {
	users := []models.User{{ID: 1}, {ID: 2}}
	vehicles := []models.Vehicle{{ID: 10}, {ID: 20}, {ID: 30}}
	reviews := []models.Review{
		{UserID: 1, VehicleID: 10, Rating: 5},
		{UserID: 2, VehicleID: 30, Rating: 2},
	}

	matrix := BuildRatingMatrix(users, vehicles, reviews)

	if len(matrix) != len(users) {
		t.Fatalf("row count = %d, want %d", len(matrix), len(users))
	}
	for i, row := range matrix {
		if len(row) != len(vehicles) {
			t.Fatalf("row %d length = %d, want %d", i, len(row), len(vehicles))
		}
	}

	want := [][]float64{
		{5, 0, 0},
		{0, 0, 2},
	}
	for i := range want {
		for j := range want[i] {
			if matrix[i][j] != want[i][j] {
				t.Errorf("matrix[%d][%d] = %v, want %v", i, j, matrix[i][j], want[i][j])
			}
		}
	}
}

func TestNearestNeighbors(t *testing.T) {
	matrix := [][]float64{
		{5, 4, 1},
		{5, 4, 1}, // identical to the target
		{1, 2, 5}, // anti-correlated
		{5, 3, 2}, // positively correlated, weaker
	}

	t.Run("ranks positive correlations descending", func(t *testing.T) {
		neighbors := nearestNeighbors(matrix, 0, 5)

		if len(neighbors) != 2 {
			t.Fatalf("neighbor count = %d, want 2", len(neighbors))
		}
		if neighbors[0].index != 1 {
			t.Errorf("best neighbor = row %d, want row 1", neighbors[0].index)
		}
		if !almostEqual(neighbors[0].similarity, 1) {
			t.Errorf("best similarity = %v, want 1", neighbors[0].similarity)
		}
		if neighbors[1].index != 3 {
			t.Errorf("second neighbor = row %d, want row 3", neighbors[1].index)
		}
		if neighbors[0].similarity < neighbors[1].similarity {
			t.Error("neighbors not sorted by descending similarity")
		}
	})

	t.Run("caps the neighborhood at k", func(t *testing.T) {
		neighbors := nearestNeighbors(matrix, 0, 1)

		if len(neighbors) != 1 {
			t.Fatalf("neighbor count = %d, want 1", len(neighbors))
		}
		if neighbors[0].index != 1 {
			t.Errorf("kept neighbor = row %d, want row 1", neighbors[0].index)
		}
	})

	t.Run("never includes the target row", func(t *testing.T) {
		for _, n := range nearestNeighbors(matrix, 0, 5) {
			if n.index == 0 {
				t.Error("target row appeared in its own neighborhood")
			}
		}
	})
}

func TestPredictScores(t *testing.T) {
	t.Run("score vector matches the column count", func(t *testing.T) {
		matrix := [][]float64{
			{5, 0, 3, 0},
			{5, 4, 3, 1},
		}
		scores := PredictScores(matrix, 0, neighborCount)
		if len(scores) != 4 {
			t.Errorf("score vector length = %d, want 4", len(scores))
		}
	})

	t.Run("similar neighbor surfaces their rated vehicle", func(t *testing.T) {
		// Target rated only vehicle A; the one perfectly similar user also
		// rated vehicle B.
		matrix := [][]float64{
			{5, 0},
			{5, 4},
		}
		scores := PredictScores(matrix, 0, neighborCount)

		if scores[1] <= 0 {
			t.Errorf("score for the neighbor's vehicle = %v, want > 0", scores[1])
		}
		if !almostEqual(scores[1], 4) {
			t.Errorf("score = %v, want 4 (single neighbor with similarity 1)", scores[1])
		}
	})

	t.Run("target with no reviews scores everything zero", func(t *testing.T) {
		matrix := [][]float64{
			{0, 0},
			{5, 4},
		}
		scores := PredictScores(matrix, 0, neighborCount)

		for j, score := range scores {
			if score != 0 {
				t.Errorf("scores[%d] = %v, want 0 for a user with no correlation signal", j, score)
			}
		}
	})

	t.Run("out-of-range target yields nil", func(t *testing.T) {
		matrix := [][]float64{{1, 2}}
		if scores := PredictScores(matrix, 3, neighborCount); scores != nil {
			t.Errorf("scores = %v, want nil", scores)
		}
	})
}

func TestFilterRecommendations(t *testing.T) {
	vehicles := []models.Vehicle{{ID: 10}, {ID: 20}, {ID: 30}}

	tests := []struct {
		name     string
		scores   []float64
		reviewed map[uint]bool
		wantIDs  []uint
	}{
		{
			name:     "keeps only positively scored vehicles",
			scores:   []float64{0.5, 0, 1.2},
			reviewed: map[uint]bool{},
			wantIDs:  []uint{10, 30},
		},
		{
			name:     "never surfaces an already-reviewed vehicle",
			scores:   []float64{5, 4, 3},
			reviewed: map[uint]bool{10: true},
			wantIDs:  []uint{20, 30},
		},
		{
			name:     "all zero scores yield an empty result",
			scores:   []float64{0, 0, 0},
			reviewed: map[uint]bool{},
			wantIDs:  []uint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecommendations(vehicles, tt.scores, tt.reviewed)

			if got == nil {
				t.Fatal("FilterRecommendations returned nil, want empty slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("result count = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, rec := range got {
				if rec.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %d, want %d", i, rec.ID, tt.wantIDs[i])
				}
				if rec.RecommendationScore <= 0 {
					t.Errorf("result[%d] score = %v, want > 0", i, rec.RecommendationScore)
				}
			}
		})
	}
}

// The two-user scenario end to end at the pure-function level: U reviewed
// only A with 5, V reviewed A with 5 and B with 4. B must surface for U with
// a positive score and A must not.
func TestRecommendationScenario(t *testing.T) {
	users := []models.User{{ID: 1}, {ID: 2}}
	vehicles := []models.Vehicle{{ID: 100}, {ID: 200}}
	reviews := []models.Review{
		{UserID: 1, VehicleID: 100, Rating: 5},
		{UserID: 2, VehicleID: 100, Rating: 5},
		{UserID: 2, VehicleID: 200, Rating: 4},
	}

	matrix := BuildRatingMatrix(users, vehicles, reviews)
	scores := PredictScores(matrix, 0, neighborCount)
	recommended := FilterRecommendations(vehicles, scores, map[uint]bool{100: true})

	if len(recommended) != 1 {
		t.Fatalf("recommendation count = %d, want 1", len(recommended))
	}
	if recommended[0].ID != 200 {
		t.Errorf("recommended vehicle = %d, want 200", recommended[0].ID)
	}
	if recommended[0].RecommendationScore <= 0 {
		t.Errorf("recommendation score = %v, want > 0", recommended[0].RecommendationScore)
	}
}
