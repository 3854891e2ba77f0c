package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	analysismodel "github.com/zhouzirui/moodlens/backend/internal/model/analysis"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
	"github.com/zhouzirui/moodlens/backend/pkg/utils"
)

// Analyzer 抽象情绪分析服务，便于测试替换。
type Analyzer interface {
	Analyze(ctx context.Context, text string) emotionservice.Outcome
	BackendName() string
}

// Handler 情绪分析的HTTP处理器
type Handler struct {
	analyzer  Analyzer
	maxLength int
}

// New 创建情绪分析处理器。maxLength <= 0 表示不限制长度。
func New(analyzer Analyzer, maxLength int) *Handler {
	return &Handler{
		analyzer:  analyzer,
		maxLength: maxLength,
	}
}

// RegisterRoutes 注册情绪分析相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Get("/emotions", h.handleLegend)
	r.Get("/examples", h.handleExamples)
	r.Get("/healthz", h.handleHealth)
}

// handleAnalyze 对请求文本进行情绪分类
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload analysismodel.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.maxLength > 0 && utf8.RuneCountInString(payload.Text) > h.maxLength {
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("text exceeds %d characters", h.maxLength))
		return
	}

	outcome := h.analyzer.Analyze(r.Context(), payload.Text)
	utils.RespondJSON(w, http.StatusOK, analysismodel.NewAnalyzeResponse(payload.Text, outcome))
}

// handleLegend 列出所有情绪及其展示信息
func (h *Handler) handleLegend(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, analysismodel.Legend())
}

// handleExamples 返回示例文本
func (h *Handler) handleExamples(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, analysismodel.Examples)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": h.analyzer.BackendName(),
	})
}
