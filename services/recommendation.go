package services

import (
	"errors"
	"math"
	"sort"

	"gorm.io/gorm"

	"vrent/config"
	"vrent/models"
)

// neighborCount is the size of the similar-user neighborhood used for scoring.
const neighborCount = 5

// ErrUserNotFound is returned when the target user cannot be resolved.
var ErrUserNotFound = errors.New("user not found")

type RecommendedVehicle struct {
	models.Vehicle
	RecommendationScore float64 `json:"recommendationScore"`
}

type ratingKey struct {
	userID    uint
	vehicleID uint
}

// BuildRatingMatrix materializes the dense user×vehicle rating matrix from a
// single bulk load of all reviews. A cell holds the review rating (1-5) or 0
// when the user never reviewed the vehicle; 0 doubles as the missing-value
// sentinel and is fed to the correlation as-is. Rows follow the user load
// order, columns the vehicle load order.
func BuildRatingMatrix(users []models.User, vehicles []models.Vehicle, reviews []models.Review) [][]float64 {
	index := make(map[ratingKey]float64, len(reviews))
	for _, review := range reviews {
		index[ratingKey{review.UserID, review.VehicleID}] = float64(review.Rating)
	}

	matrix := make([][]float64, len(users))
	for i, user := range users {
		row := make([]float64, len(vehicles))
		for j, vehicle := range vehicles {
			row[j] = index[ratingKey{user.ID, vehicle.ID}]
		}
		matrix[i] = row
	}
	return matrix
}

// PearsonCorrelation computes the Pearson correlation coefficient between two
// equal-length rating rows. Rows with no variance yield 0.
func PearsonCorrelation(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / float64(len(a))
	meanB := sumB / float64(len(b))

	var num, denA, denB float64
	for i := range a {
		diffA := a[i] - meanA
		diffB := b[i] - meanB
		num += diffA * diffB
		denA += diffA * diffA
		denB += diffB * diffB
	}

	if denA == 0 || denB == 0 {
		return 0
	}
	return num / (math.Sqrt(denA) * math.Sqrt(denB))
}

type neighbor struct {
	index      int
	similarity float64
}

// nearestNeighbors ranks every other row by Pearson correlation against the
// target row and keeps the k most similar. Non-positive correlations carry no
// signal and are dropped.
func nearestNeighbors(matrix [][]float64, target, k int) []neighbor {
	neighbors := make([]neighbor, 0, len(matrix))
	for i := range matrix {
		if i == target {
			continue
		}
		sim := PearsonCorrelation(matrix[target], matrix[i])
		if sim > 0 {
			neighbors = append(neighbors, neighbor{index: i, similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].similarity > neighbors[j].similarity
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// PredictScores derives one predicted-interest score per vehicle column for
// the target row:
//
//	score(j) = sum_n sim(n) * r(n, j) / sum_n |sim(n)|
//
// over the neighbors that rated column j. Columns no neighbor rated score 0.
// The result is aligned positionally with the matrix columns.
func PredictScores(matrix [][]float64, target, k int) []float64 {
	if target < 0 || target >= len(matrix) {
		return nil
	}

	neighbors := nearestNeighbors(matrix, target, k)
	scores := make([]float64, len(matrix[target]))

	for j := range scores {
		var num, den float64
		for _, n := range neighbors {
			if rating := matrix[n.index][j]; rating > 0 {
				num += n.similarity * rating
				den += math.Abs(n.similarity)
			}
		}
		if den > 0 {
			scores[j] = num / den
		}
	}
	return scores
}

// Recommend proposes vehicles the given user has not reviewed yet, scored by
// similarity to the five most alike reviewers. Vehicles come back in load
// order with their score attached; callers get an empty slice, not an error,
// when no correlation signal exists.
func Recommend(userID uint) ([]RecommendedVehicle, error) {
	var target models.User
	if err := config.DB.First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var users []models.User
	if err := config.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := config.DB.Order("id").Find(&vehicles).Error; err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := config.DB.Find(&reviews).Error; err != nil {
		return nil, err
	}

	matrix := BuildRatingMatrix(users, vehicles, reviews)

	targetIndex := -1
	for i, user := range users {
		if user.ID == userID {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		return nil, ErrUserNotFound
	}

	scores := PredictScores(matrix, targetIndex, neighborCount)

	reviewed := make(map[uint]bool)
	for _, review := range reviews {
		if review.UserID == userID {
			reviewed[review.VehicleID] = true
		}
	}

	return FilterRecommendations(vehicles, scores, reviewed), nil
}

// FilterRecommendations pairs each positively scored vehicle with its score,
// dropping vehicles the target user already reviewed. Vehicles keep their
// load order.
func FilterRecommendations(vehicles []models.Vehicle, scores []float64, reviewed map[uint]bool) []RecommendedVehicle {
	recommended := []RecommendedVehicle{}
	for j, score := range scores {
		if j >= len(vehicles) {
			break
		}
		if score <= 0 || reviewed[vehicles[j].ID] {
			continue
		}
		recommended = append(recommended, RecommendedVehicle{
			Vehicle:             vehicles[j],
			RecommendationScore: score,
		})
	}
	return recommended
}
