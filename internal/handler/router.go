package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/moodlens/backend/internal/config"
	"github.com/zhouzirui/moodlens/backend/internal/handler/analyze"
	"github.com/zhouzirui/moodlens/backend/internal/handler/live"
	middlewarePkg "github.com/zhouzirui/moodlens/backend/internal/middleware"
	emotionService "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
	"github.com/zhouzirui/moodlens/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(emotionSvc *emotionService.Service, analyzerCfg config.AnalyzerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	analyzeHandler := analyze.New(emotionSvc, analyzerCfg.MaxTextLength)
	liveHandler := live.New(emotionSvc, analyzerCfg.Debounce, analyzerCfg.MaxTextLength)

	r.Route("/api", func(api chi.Router) {
		// 单次分析、情绪图例与示例文本
		analyzeHandler.RegisterRoutes(api)

		// 输入框实时分析
		liveHandler.RegisterRoutes(api)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})

	return r
}
