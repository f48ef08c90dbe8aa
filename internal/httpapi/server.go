package httpapi

import (
	"time"

	"go.uber.org/zap"

	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/hub"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/recommend"
	"github.com/TayDaGreatDIY/M2DG-Basketball-Platform-sub000/internal/store"
)

type Server struct {
	store     store.Store
	hub       *hub.Hub
	log       *zap.Logger
	jwtSecret []byte
	jwtTTL    time.Duration
	rec       recommend.RecommendationProvider
	video     recommend.VideoAnalysisProvider
}

type Options struct {
	Store     store.Store
	Hub       *hub.Hub
	Log       *zap.Logger
	JWTSecret []byte
	JWTTTL    time.Duration
	// Providers default to the static stubs when nil.
	Recommendations recommend.RecommendationProvider
	VideoAnalysis   recommend.VideoAnalysisProvider
}

func NewServer(opts Options) *Server {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Recommendations == nil {
		opts.Recommendations = recommend.Static{}
	}
	if opts.VideoAnalysis == nil {
		opts.VideoAnalysis = recommend.Static{}
	}
	if opts.JWTTTL == 0 {
		opts.JWTTTL = time.Hour
	}
	return &Server{
		store:     opts.Store,
		hub:       opts.Hub,
		log:       opts.Log,
		jwtSecret: opts.JWTSecret,
		jwtTTL:    opts.JWTTTL,
		rec:       opts.Recommendations,
		video:     opts.VideoAnalysis,
	}
}
