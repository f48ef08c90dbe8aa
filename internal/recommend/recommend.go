package recommend

import "context"

// Both providers are deliberately stubbed: the platform ships canned
// content today, and the interfaces exist so a real model can be dropped
// in without touching the HTTP layer.

type Recommendation struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Detail     string  `json:"detail"`
	Confidence float64 `json:"confidence"`
}

type RecommendationProvider interface {
	Recommend(ctx context.Context, userID string) ([]Recommendation, error)
}

type VideoAnalysis struct {
	OverallScore float64  `json:"overall_score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type VideoAnalysisProvider interface {
	Analyze(ctx context.Context, videoURL string) (*VideoAnalysis, error)
}

// Static serves the same fixed content to every caller.
type Static struct{}

func (Static) Recommend(_ context.Context, _ string) ([]Recommendation, error) {
	return []Recommendation{
		{Category: "training", Title: "Work on your free throws", Detail: "Your completion rate in close games suggests 15 minutes of free-throw practice per session.", Confidence: 0.82},
		{Category: "matchup", Title: "Challenge players near your win rate", Detail: "Opponents within 10% of your win rate produce the closest games.", Confidence: 0.74},
		{Category: "recovery", Title: "Schedule a rest day", Detail: "You have played four days in a row.", Confidence: 0.68},
	}, nil
}

func (Static) Analyze(_ context.Context, _ string) (*VideoAnalysis, error) {
	return &VideoAnalysis{
		OverallScore: 7.8,
		Strengths:    []string{"Consistent shooting form", "Good court vision"},
		Improvements: []string{"Follow through on jump shots", "Wider defensive stance"},
	}, nil
}
