package model

type Recommendation struct {
	Vehicle VehicleSummary `json:"vehicle"`
	Score   float64        `json:"score"`
	Reasons []string       `json:"reasons"`
}

type RecommendationList struct {
	Personalized bool             `json:"personalized"`
	Items        []Recommendation `json:"items"`
}
