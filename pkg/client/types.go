package client

import (
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/leaderboard"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/models"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/recommend"
)

// Aliases for the wire types so consumers of this package can name and
// construct them without reaching into internal packages.
type (
	User       = models.User
	Court      = models.Court
	Booking    = models.Booking
	Tournament = models.Tournament
	Challenge  = models.Challenge
	Team       = models.Team
	Coach      = models.Coach
	Game       = models.Game
	Score      = models.Score
	StringList = models.StringList

	LeaderboardRow = leaderboard.Row
	Recommendation = recommend.Recommendation
	VideoAnalysis  = recommend.VideoAnalysis
)
